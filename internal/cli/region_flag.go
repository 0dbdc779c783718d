package cli

import (
	"fmt"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/spf13/pflag"
)

// regionFlag is a --region value: a federative unit code, normalized to upper
// case and checked on parse. Empty means national dates only.
type regionFlag struct {
	code string
}

var _ pflag.Value = (*regionFlag)(nil)

func (f *regionFlag) String() string { return f.code }

func (f *regionFlag) Set(s string) error {
	code := domain.NormalizeRegionCode(s)
	if code == "" {
		f.code = ""
		return nil
	}
	if _, ok := domain.LookupRegion(code); !ok {
		return fmt.Errorf("unknown region %q (run `pauta regions` for the list)", s)
	}
	f.code = code
	return nil
}

func (f *regionFlag) Type() string { return "UF" }

// addRegionFlag registers --region/-r on flags, bound to f.
func addRegionFlag(flags *pflag.FlagSet, f *regionFlag, usage string) {
	flags.VarP(f, "region", "r", usage)
}
