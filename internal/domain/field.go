package domain

import "strings"

// StudyField is one of the fixed coarse domains used to bias question sourcing.
type StudyField string

const (
	FieldSTEM           StudyField = "stem"
	FieldBusiness       StudyField = "business"
	FieldSocialSciences StudyField = "social_sciences"
	FieldHealthMedicine StudyField = "health_medicine"
	FieldCreativeArts   StudyField = "creative_arts"
	FieldOther          StudyField = "other"
)

// Question categories, in declaration order. The order matters: primary
// category ties are broken by position in this slice.
const (
	CategoryTechnical     = "technical"
	CategoryAnalytical    = "analytical"
	CategoryCommunication = "communication"
	CategoryGeneral       = "general_knowledge"
)

// Categories lists all question categories in declaration order.
var Categories = []string{
	CategoryTechnical,
	CategoryAnalytical,
	CategoryCommunication,
	CategoryGeneral,
}

// Difficulty levels.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Difficulties lists all difficulty levels.
var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// categoryWeights holds the percentage mass per category for each field.
// Each row sums to 100.
var categoryWeights = map[StudyField]map[string]int{
	FieldSTEM:           {CategoryTechnical: 40, CategoryAnalytical: 25, CategoryCommunication: 15, CategoryGeneral: 20},
	FieldBusiness:       {CategoryTechnical: 15, CategoryAnalytical: 35, CategoryCommunication: 25, CategoryGeneral: 25},
	FieldSocialSciences: {CategoryTechnical: 10, CategoryAnalytical: 30, CategoryCommunication: 35, CategoryGeneral: 25},
	FieldHealthMedicine: {CategoryTechnical: 35, CategoryAnalytical: 30, CategoryCommunication: 15, CategoryGeneral: 20},
	FieldCreativeArts:   {CategoryTechnical: 10, CategoryAnalytical: 20, CategoryCommunication: 40, CategoryGeneral: 30},
	FieldOther:          {CategoryTechnical: 15, CategoryAnalytical: 25, CategoryCommunication: 20, CategoryGeneral: 40},
}

// difficultyWeights holds the percentage mass per difficulty for each field.
// Each row sums to 100.
var difficultyWeights = map[StudyField]map[string]int{
	FieldSTEM:           {DifficultyEasy: 25, DifficultyMedium: 50, DifficultyHard: 25},
	FieldBusiness:       {DifficultyEasy: 30, DifficultyMedium: 50, DifficultyHard: 20},
	FieldSocialSciences: {DifficultyEasy: 35, DifficultyMedium: 45, DifficultyHard: 20},
	FieldHealthMedicine: {DifficultyEasy: 30, DifficultyMedium: 45, DifficultyHard: 25},
	FieldCreativeArts:   {DifficultyEasy: 40, DifficultyMedium: 40, DifficultyHard: 20},
	FieldOther:          {DifficultyEasy: 40, DifficultyMedium: 40, DifficultyHard: 20},
}

// AllStudyFields lists every study field.
var AllStudyFields = []StudyField{
	FieldSTEM,
	FieldBusiness,
	FieldSocialSciences,
	FieldHealthMedicine,
	FieldCreativeArts,
	FieldOther,
}

// CategoryWeights returns the category weight table for a field. Unknown
// fields fall back to FieldOther.
func CategoryWeights(field StudyField) map[string]int {
	if w, ok := categoryWeights[field]; ok {
		return w
	}
	return categoryWeights[FieldOther]
}

// DifficultyWeights returns the difficulty distribution for a field. Unknown
// fields fall back to FieldOther.
func DifficultyWeights(field StudyField) map[string]int {
	if w, ok := difficultyWeights[field]; ok {
		return w
	}
	return difficultyWeights[FieldOther]
}

// LearnerProfile carries the free-text intake data used for field detection.
// It is ephemeral input; the engine never persists it.
type LearnerProfile struct {
	FieldOfStudy   string
	CurrentSkills  string
	Interests      string
	Goals          string
	EducationLevel string
}

// fieldKeywords are tested in priority order; the first list with any
// substring match wins.
var fieldKeywordOrder = []StudyField{
	FieldSTEM,
	FieldBusiness,
	FieldSocialSciences,
	FieldHealthMedicine,
	FieldCreativeArts,
}

var fieldKeywords = map[StudyField][]string{
	FieldSTEM: {
		"computer science", "software", "programming", "engineering",
		"mathematics", "physics", "chemistry", "biology", "statistics",
		"machine learning", "data science", "technology", "electronics",
	},
	FieldBusiness: {
		"business", "finance", "accounting", "marketing", "economics",
		"management", "entrepreneur", "commerce", "sales",
	},
	FieldSocialSciences: {
		"psychology", "sociology", "political science", "anthropology",
		"history", "philosophy", "law", "education", "linguistics",
	},
	FieldHealthMedicine: {
		"medicine", "medical", "nursing", "pharmacy", "health",
		"dentistry", "veterinary", "physiotherapy", "nutrition",
	},
	FieldCreativeArts: {
		"design", "music", "painting", "film", "theatre", "writing",
		"photography", "fashion", "architecture", "artist", "fine arts",
	},
}

// DetectField maps a learner profile to a study field by keyword matching
// over the concatenated, lowercased profile text. It always returns a field;
// FieldOther when nothing matches.
func DetectField(profile LearnerProfile) StudyField {
	text := strings.ToLower(strings.Join([]string{
		profile.FieldOfStudy,
		profile.CurrentSkills,
		profile.Interests,
		profile.Goals,
		profile.EducationLevel,
	}, " "))

	for _, field := range fieldKeywordOrder {
		for _, keyword := range fieldKeywords[field] {
			if strings.Contains(text, keyword) {
				return field
			}
		}
	}
	return FieldOther
}
