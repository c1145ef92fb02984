package taxonomy

// systemNames is the single source of truth for the cabinet's systems. The
// ROM, emulator and front-end hierarchies are all derived from it so the
// three trees can never drift apart.
var systemNames = []string{
	"Atari 2600",
	"Atari 7800",
	"Atari Lynx",
	"Daphne",
	"MAME",
	"Microsoft Xbox",
	"Microsoft Xbox 360",
	"NEC TurboGrafx-16",
	"Nintendo 64",
	"Nintendo DS",
	"Nintendo Entertainment System",
	"Nintendo Game Boy",
	"Nintendo Game Boy Advance",
	"Nintendo Game Boy Color",
	"Nintendo GameCube",
	"Nintendo Wii",
	"PC Games",
	"Sega 32X",
	"Sega CD",
	"Sega Dreamcast",
	"Sega Game Gear",
	"Sega Genesis",
	"Sega Master System",
	"Sega Saturn",
	"SNK Neo Geo",
	"Sony PlayStation",
	"Sony PlayStation 2",
	"Sony PSP",
	"Super Nintendo Entertainment System",
	"TeknoParrot",
}

// SystemNames returns a copy of the cabinet's system list.
func SystemNames() []string {
	out := make([]string, len(systemNames))
	copy(out, systemNames)
	return out
}

func perSystem(children ...Category) []Category {
	cats := make([]Category, len(systemNames))
	for i, name := range systemNames {
		cats[i] = Category{Name: name, Children: children}
	}
	return cats
}

// RomLibrary is the taxonomy of ROM storage folders: one folder per system
// under a single Roms root.
func RomLibrary() []Category {
	return []Category{
		{Name: "Roms", Children: perSystem()},
	}
}

// EmulatorLibrary is the taxonomy of emulator install folders, mirroring the
// ROM hierarchy one to one.
func EmulatorLibrary() []Category {
	return []Category{
		{Name: "Emulators", Children: perSystem()},
	}
}

// FrontendLibrary is the taxonomy of HyperSpin support folders: per-system
// databases, media (wheel art, backgrounds, theme videos) and settings.
func FrontendLibrary() []Category {
	media := []Category{
		{Name: "Images", Children: []Category{
			{Name: "Artwork"},
			{Name: "Backgrounds"},
			{Name: "Wheel"},
		}},
		{Name: "Themes"},
		{Name: "Video"},
	}
	return []Category{
		{Name: "Databases", Children: perSystem()},
		{Name: "Media", Children: perSystem(media...)},
		{Name: "Settings"},
	}
}

// FullLibrary is every built-in hierarchy combined, the default scaffold set.
func FullLibrary() []Category {
	var all []Category
	all = append(all, RomLibrary()...)
	all = append(all, EmulatorLibrary()...)
	all = append(all, FrontendLibrary()...)
	return all
}

// Libraries maps the names accepted by the scaffold command to their
// taxonomies.
func Libraries() map[string]func() []Category {
	return map[string]func() []Category{
		"roms":      RomLibrary,
		"emulators": EmulatorLibrary,
		"frontend":  FrontendLibrary,
		"all":       FullLibrary,
	}
}
