package kernel

// ExperienceLevel is shared by job postings and job seeker profiles
type ExperienceLevel string

const (
	LevelEntry  ExperienceLevel = "Entry"
	LevelMid    ExperienceLevel = "Mid"
	LevelSenior ExperienceLevel = "Senior"
	LevelExpert ExperienceLevel = "Expert"
	LevelLead   ExperienceLevel = "Lead"
)

var ExperienceLevelValues = []ExperienceLevel{LevelEntry, LevelMid, LevelSenior, LevelExpert, LevelLead}

func (l ExperienceLevel) String() string { return string(l) }
func (l ExperienceLevel) IsEmpty() bool  { return string(l) == "" }
