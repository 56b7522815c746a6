package domain

// Course represents a course in the catalog: an ordered list of levels,
// each holding an ordered list of modules. The declared order is the
// canonical traversal order used for recommendations.
type Course struct {
	ID             string
	Name           string
	Description    string
	Icon           string
	Difficulty     string
	EstimatedHours int
	Tags           []string
	Levels         []Level
}

// Level groups modules within a course.
type Level struct {
	ID      string
	Title   string
	Modules []Module
}

// Module is a single unit of learning content.
type Module struct {
	ID               string
	Title            string
	Content          string
	EstimatedMinutes int
	Exercises        []Exercise
}

// Exercise is a scored activity within a module.
type Exercise struct {
	ID               string
	Title            string
	Description      string
	Points           int
	EstimatedMinutes int
	Type             string // practice, challenge or project
}

// ModuleQuiz is a single-question quiz attached to a module.
type ModuleQuiz struct {
	ModuleID     string   `json:"module_id"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// RecommendedModule identifies the next module a user should work on.
type RecommendedModule struct {
	LevelID     string `json:"level_id"`
	LevelTitle  string `json:"level_title"`
	ModuleID    string `json:"module_id"`
	ModuleTitle string `json:"module_title"`
}

// TotalModules counts the modules across all levels.
func (c *Course) TotalModules() int {
	total := 0
	for _, level := range c.Levels {
		total += len(level.Modules)
	}
	return total
}

// FindLevel returns the level with the given ID, or nil.
func (c *Course) FindLevel(levelID string) *Level {
	for i := range c.Levels {
		if c.Levels[i].ID == levelID {
			return &c.Levels[i]
		}
	}
	return nil
}

// FindModule returns the module with the given ID within the level, or nil.
func (l *Level) FindModule(moduleID string) *Module {
	for i := range l.Modules {
		if l.Modules[i].ID == moduleID {
			return &l.Modules[i]
		}
	}
	return nil
}

// NextRecommendedModule scans levels in declared order, then modules within
// each level in declared order, and returns the first module that is not
// completed according to the given progress records. It returns nil when
// every module is completed.
func (c *Course) NextRecommendedModule(records []ProgressRecord) *RecommendedModule {
	byModule := make(map[string]*ProgressRecord, len(records))
	for i := range records {
		byModule[records[i].ModuleID] = &records[i]
	}

	for _, level := range c.Levels {
		for _, module := range level.Modules {
			rec, ok := byModule[module.ID]
			if !ok || !rec.Progress.Completed {
				return &RecommendedModule{
					LevelID:     level.ID,
					LevelTitle:  level.Title,
					ModuleID:    module.ID,
					ModuleTitle: module.Title,
				}
			}
		}
	}
	return nil
}

// CompletionPercentage computes round(100 * completed / total) for the
// course given the user's progress records. A course with no modules has
// zero completion.
func (c *Course) CompletionPercentage(records []ProgressRecord) int {
	total := c.TotalModules()
	if total == 0 {
		return 0
	}

	completed := make(map[string]bool, len(records))
	for _, rec := range records {
		if rec.Progress.Completed {
			completed[rec.ModuleID] = true
		}
	}

	done := 0
	for _, level := range c.Levels {
		for _, module := range level.Modules {
			if completed[module.ID] {
				done++
			}
		}
	}

	// Round to nearest integer
	return (done*100 + total/2) / total
}
