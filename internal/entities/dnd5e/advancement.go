package dnd5e

// Level and XP bounds
const (
	MinLevel            = 1
	MaxLevel            = 20
	MaxExperiencePoints = 355000
)

// ClassLevel is one class held by a multiclass character
type ClassLevel struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Subclass string `json:"subclass,omitempty"`
}

// LevelEntry records one completed level gain
type LevelEntry struct {
	Level            int    `json:"level"`
	Class            string `json:"class"`
	HitPointsGained  int    `json:"hit_points_gained"`
	ExperiencePoints int    `json:"experience_points"`
	Manual           bool   `json:"manual"`
	At               int64  `json:"at"`
}

// AdvancementState tracks XP and level history. LevelHistory is append-only.
type AdvancementState struct {
	ExperiencePoints int          `json:"experience_points"`
	CurrentLevel     int          `json:"current_level"`
	LevelHistory     []LevelEntry `json:"level_history"`
}

// NewAdvancementState starts at level 1 with no XP
func NewAdvancementState() *AdvancementState {
	return &AdvancementState{
		CurrentLevel: MinLevel,
		LevelHistory: []LevelEntry{},
	}
}

// Clone returns a deep copy
func (a *AdvancementState) Clone() *AdvancementState {
	if a == nil {
		return nil
	}
	clone := *a
	clone.LevelHistory = append([]LevelEntry(nil), a.LevelHistory...)
	return &clone
}
