// package iccmd implements the intcode command line tool.
package iccmd

import (
	"fmt"
	"os"
	"strconv"

	"go.brendoncarroll.net/star"

	"intcodeweb.org/intcode"
	"intcodeweb.org/intcode/icmem"
)

func Root() star.Command {
	return root
}

var root = star.NewDir(star.Metadata{
	Short: "run and inspect intcode programs",
}, map[star.Symbol]star.Command{
	"run":   runCmd,
	"dis":   disCmd,
	"amp":   ampCmd,
	"net":   netCmd,
	"nbody": nbodyCmd,
})

var loader = icmem.NewLoader(16)

// ProgParam loads an intcode program from a file
var ProgParam = star.Param[*icmem.Machine]{
	Name: "prog",
	Parse: func(x string) (*icmem.Machine, error) {
		data, err := os.ReadFile(x)
		if err != nil {
			return nil, err
		}
		return loader.Load(string(data))
	},
}

var inputParam = star.Param[intcode.Word]{
	Name:     "in",
	Repeated: true,
	Parse:    ParseWord,
}

var maxStepsParam = star.Param[uint64]{
	Name:    "max-steps",
	Default: star.Ptr("0"),
	Parse: func(x string) (uint64, error) {
		return strconv.ParseUint(x, 10, 64)
	},
}

func ParseWord(x string) (intcode.Word, error) {
	return strconv.ParseInt(x, 10, 64)
}

func parseInt(x string) (int, error) {
	n, err := strconv.ParseInt(x, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", x, err)
	}
	return int(n), nil
}
