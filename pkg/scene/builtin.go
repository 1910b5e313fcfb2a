package scene

// Builtin describes a scene constructed in code
type Builtin struct {
	ID          string
	Name        string
	Description string
	Build       func() *Scene
}

var builtins = []Builtin{
	{
		ID:          "default",
		Name:        "Default Scene",
		Description: "Three spheres on a reflective floor",
		Build:       NewDefaultScene,
	},
	{
		ID:          "cornell",
		Name:        "Cornell Box",
		Description: "Cornell box with a mirror sphere and a glossy sphere",
		Build:       NewCornellScene,
	},
	{
		ID:          "sphere-grid",
		Name:        "Sphere Grid",
		Description: "20x20 grid of colored reflective spheres",
		Build:       func() *Scene { return NewSphereGridScene(20) },
	},
	{
		ID:          "sphere-field",
		Name:        "Sphere Field",
		Description: "60x60 grid of small spheres for acceleration benchmarks",
		Build: func() *Scene {
			s := NewSphereGridScene(60)
			s.Name = "sphere-field"
			return s
		},
	},
}

// Builtins returns the scenes constructed in code, in display order
func Builtins() []Builtin {
	out := make([]Builtin, len(builtins))
	copy(out, builtins)
	return out
}

// LookupBuiltin finds a built-in scene by ID
func LookupBuiltin(id string) (Builtin, bool) {
	for _, b := range builtins {
		if b.ID == id {
			return b, true
		}
	}
	return Builtin{}, false
}
