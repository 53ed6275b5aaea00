package iccmd

import (
	"os"
	"strconv"
	"strings"

	"go.brendoncarroll.net/star"

	"intcodeweb.org/intcode"
	"intcodeweb.org/intcode/icnbody"
	"intcodeweb.org/intcode/icsys"
)

var ampCmd = star.Command{
	Metadata: star.Metadata{
		Short: "find the phase settings which produce the largest amplifier signal",
	},
	Flags: []star.IParam{phasesParam, feedbackParam},
	Pos:   []star.IParam{ProgParam},
	F: func(c star.Context) error {
		amp := icsys.RunChain
		if feedbackParam.Load(c) {
			amp = icsys.RunFeedback
		}
		phases := phasesParam.Load(c)
		if phases == nil {
			phases = []intcode.Word{0, 1, 2, 3, 4}
			if feedbackParam.Load(c) {
				phases = []intcode.Word{5, 6, 7, 8, 9}
			}
		}
		best, order, err := icsys.MaxSignal(c.Context, ProgParam.Load(c), phases, amp)
		if err != nil {
			return err
		}
		c.Printf("%d %v\n", best, order)
		return nil
	},
}

var phasesParam = star.Param[[]intcode.Word]{
	Name:    "phases",
	Default: star.Ptr(""),
	Parse:   ParseWords,
}

var feedbackParam = star.Param[bool]{
	Name:    "feedback",
	Default: star.Ptr("false"),
	Parse:   strconv.ParseBool,
}

// ParseWords parses a comma separated list of words. The empty string is an empty list.
func ParseWords(x string) ([]intcode.Word, error) {
	if strings.TrimSpace(x) == "" {
		return nil, nil
	}
	var ret []intcode.Word
	for _, part := range strings.Split(x, ",") {
		w, err := ParseWord(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ret = append(ret, w)
	}
	return ret, nil
}

var netCmd = star.Command{
	Metadata: star.Metadata{
		Short: "run a network of machines until a packet reaches the monitor address",
	},
	Flags: []star.IParam{netSizeParam, monitorParam, roundsParam},
	Pos:   []star.IParam{ProgParam},
	F: func(c star.Context) error {
		net := icsys.NewNetwork(ProgParam.Load(c), icsys.NetworkConfig{
			Size:    netSizeParam.Load(c),
			Monitor: monitorParam.Load(c),
		})
		p, err := net.Run(c.Context, roundsParam.Load(c))
		if err != nil {
			return err
		}
		c.Printf("dest=%d x=%d y=%d\n", p.Dest, p.X, p.Y)
		return nil
	},
}

var netSizeParam = star.Param[int]{
	Name:    "size",
	Default: star.Ptr(strconv.Itoa(icsys.DefaultNetworkSize)),
	Parse:   parseInt,
}

var monitorParam = star.Param[int]{
	Name:    "monitor",
	Default: star.Ptr(strconv.Itoa(icsys.DefaultMonitor)),
	Parse:   parseInt,
}

var roundsParam = star.Param[int]{
	Name:    "rounds",
	Default: star.Ptr("100000"),
	Parse:   parseInt,
}

var nbodyCmd = star.Command{
	Metadata: star.Metadata{
		Short: "simulate moons, printing the total energy and the period of the system",
	},
	Flags: []star.IParam{stepsParam},
	Pos:   []star.IParam{moonsParam},
	F: func(c star.Context) error {
		moons := moonsParam.Load(c)
		period := icnbody.Period(moons)
		icnbody.Simulate(moons, stepsParam.Load(c))
		c.Printf("energy=%d period=%d\n", icnbody.TotalEnergy(moons), period)
		return nil
	},
}

var moonsParam = star.Param[[]icnbody.Moon]{
	Name: "moons",
	Parse: func(x string) ([]icnbody.Moon, error) {
		data, err := os.ReadFile(x)
		if err != nil {
			return nil, err
		}
		return icnbody.Parse(string(data))
	},
}

var stepsParam = star.Param[int]{
	Name:    "steps",
	Default: star.Ptr("1000"),
	Parse:   parseInt,
}
