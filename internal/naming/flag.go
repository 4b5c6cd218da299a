package naming

import "github.com/spf13/pflag"

// CrateNameValue is a pflag.Value that only accepts valid crate names and
// stores them normalized.
type CrateNameValue string

var _ pflag.Value = (*CrateNameValue)(nil)

func (v *CrateNameValue) String() string { return string(*v) }

func (v *CrateNameValue) Set(s string) error {
	name, err := ValidCrateName(s)
	if err != nil {
		return err
	}
	*v = CrateNameValue(name)
	return nil
}

func (v *CrateNameValue) Type() string { return "crate-name" }

// PackageNameValue is a pflag.Value that normalizes input to snake_case and
// rejects values that do not form a valid package name.
type PackageNameValue string

var _ pflag.Value = (*PackageNameValue)(nil)

func (v *PackageNameValue) String() string { return string(*v) }

func (v *PackageNameValue) Set(s string) error {
	name, err := ValidPackageName(PackageNameFrom(s))
	if err != nil {
		return err
	}
	*v = PackageNameValue(name)
	return nil
}

func (v *PackageNameValue) Type() string { return "package-name" }
