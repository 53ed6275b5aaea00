// package icnbody simulates bodies which pull on each other along each axis independently.
package icnbody

import (
	"bufio"
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

type Vec3 struct {
	X, Y, Z int64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Energy is the sum of the absolute values of the components
func (v Vec3) Energy() int64 {
	return abs(v.X) + abs(v.Y) + abs(v.Z)
}

func (v Vec3) axis(i int) int64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

type Moon struct {
	Pos Vec3
	Vel Vec3
}

// Energy is potential energy times kinetic energy
func (m Moon) Energy() int64 {
	return m.Pos.Energy() * m.Vel.Energy()
}

func (m Moon) String() string {
	return fmt.Sprintf("pos=<x=%d, y=%d, z=%d>, vel=<x=%d, y=%d, z=%d>",
		m.Pos.X, m.Pos.Y, m.Pos.Z, m.Vel.X, m.Vel.Y, m.Vel.Z)
}

// Parse reads one moon per line, in the form <x=1, y=2, z=3>.
// Blank lines are skipped. Every moon starts at rest.
func Parse(text string) ([]Moon, error) {
	var ret []Moon
	sc := bufio.NewScanner(strings.NewReader(text))
	for lineNum := 1; sc.Scan(); lineNum++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var p Vec3
		if _, err := fmt.Sscanf(line, "<x=%d, y=%d, z=%d>", &p.X, &p.Y, &p.Z); err != nil {
			return nil, fmt.Errorf("line %d: parsing moon from %q: %w", lineNum, line, err)
		}
		ret = append(ret, Moon{Pos: p})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Step applies gravity between every pair of moons, then moves each moon by its velocity.
func Step(moons []Moon) {
	for i := range moons {
		for j := range moons {
			if i == j {
				continue
			}
			moons[i].Vel = moons[i].Vel.Add(pull(moons[i].Pos, moons[j].Pos))
		}
	}
	for i := range moons {
		moons[i].Pos = moons[i].Pos.Add(moons[i].Vel)
	}
}

// Simulate runs n steps on moons in place
func Simulate(moons []Moon, n int) {
	for i := 0; i < n; i++ {
		Step(moons)
	}
}

func TotalEnergy(moons []Moon) (ret int64) {
	for _, m := range moons {
		ret += m.Energy()
	}
	return ret
}

// Period returns the number of steps until the system returns to the state in moons.
// The axes are independent, so the period is the least common multiple of the period of each axis.
// moons is not modified.
func Period(moons []Moon) int64 {
	var period int64 = 1
	for axis := 0; axis < 3; axis++ {
		period = lcm(period, axisPeriod(moons, axis))
	}
	return period
}

func axisPeriod(moons []Moon, axis int) int64 {
	pos0 := make([]int64, len(moons))
	vel0 := make([]int64, len(moons))
	for i, m := range moons {
		pos0[i] = m.Pos.axis(axis)
		vel0[i] = m.Vel.axis(axis)
	}
	pos := append([]int64{}, pos0...)
	vel := append([]int64{}, vel0...)
	for n := int64(1); ; n++ {
		for i := range pos {
			for j := range pos {
				vel[i] += sign(pos[j] - pos[i])
			}
		}
		same := true
		for i := range pos {
			pos[i] += vel[i]
			same = same && pos[i] == pos0[i] && vel[i] == vel0[i]
		}
		if same {
			return n
		}
	}
}

func pull(from, to Vec3) Vec3 {
	return Vec3{
		X: sign(to.X - from.X),
		Y: sign(to.Y - from.Y),
		Z: sign(to.Z - from.Z),
	}
}

func sign[T constraints.Signed](x T) T {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

func gcd[T constraints.Integer](a, b T) T {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm[T constraints.Integer](a, b T) T {
	return a / gcd(a, b) * b
}
