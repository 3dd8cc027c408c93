package odeint

import (
	"fmt"
	"sort"
	"strings"
)

// Info describes a registered method.
type Info struct {
	Name     string
	Title    string
	Order    int
	Adaptive bool
	Method   Method
}

var registry = []Info{
	{Name: "euler", Title: "Euler method", Order: 1, Method: Euler},
	{Name: "rk4", Title: "Classical Runge-Kutta, 4th order", Order: 4, Method: RK4},
	{Name: "ab3", Title: "3-step Adams-Bashforth", Order: 3, Method: AdamsBashforth3},
	{Name: "rkf45", Title: "Runge-Kutta-Fehlberg 4(5) with step control", Order: 4, Adaptive: true, Method: RKF45},
	{Name: "rkdp", Title: "Dormand-Prince 5(4) with step control", Order: 4, Adaptive: true, Method: DormandPrince},
}

var aliases = map[string]string{
	"adams":  "ab3",
	"rkf":    "rkf45",
	"dopri":  "rkdp",
	"dopri5": "rkdp",
}

// Methods lists every method in canonical order.
func Methods() []Info {
	out := make([]Info, len(registry))
	copy(out, registry)
	return out
}

// Names lists the canonical method names.
func Names() []string {
	names := make([]string, len(registry))
	for i, info := range registry {
		names[i] = info.Name
	}
	return names
}

// Describe returns the registry entry for name or one of its aliases.
func Describe(name string) (Info, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	for _, info := range registry {
		if info.Name == key {
			return info, nil
		}
	}
	known := append(Names(), aliasNames()...)
	return Info{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownMethod, name, strings.Join(known, ", "))
}

// Lookup returns the integrator registered under name.
func Lookup(name string) (Method, error) {
	info, err := Describe(name)
	if err != nil {
		return nil, err
	}
	return info.Method, nil
}

func aliasNames() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
