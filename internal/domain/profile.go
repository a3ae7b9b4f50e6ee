package domain

import (
	"fmt"
	"time"
)

// Education is the closed list of musical-education levels a user picks from
// during onboarding. The codes are what gets stored; the labels are what the
// user sees on the buttons.
type Education string

const (
	EducationSelfTaught   Education = "self"
	EducationMusicSchool  Education = "school"
	EducationCollege      Education = "college"
	EducationConservatory Education = "conservatory"
)

var educationLabels = map[Education]string{
	EducationSelfTaught:   "Самоучка",
	EducationMusicSchool:  "Музыкальная школа",
	EducationCollege:      "Музыкальное училище",
	EducationConservatory: "Консерватория",
}

// EducationLevels returns all levels in the fixed order they are presented.
func EducationLevels() []Education {
	return []Education{
		EducationSelfTaught,
		EducationMusicSchool,
		EducationCollege,
		EducationConservatory,
	}
}

// ParseEducation maps a stored code back to an Education level.
func ParseEducation(code string) (Education, bool) {
	e := Education(code)
	_, ok := educationLabels[e]
	return e, ok
}

func (e Education) Label() string {
	return educationLabels[e]
}

func (e Education) Valid() bool {
	_, ok := educationLabels[e]
	return ok
}

// Profile is a user's onboarded record, keyed by their Telegram chat id.
type Profile struct {
	ID          int64     `json:"id" db:"id"`
	Username    string    `json:"username" db:"username"`
	Name        string    `json:"name" db:"name"`
	Faculty     string    `json:"faculty" db:"faculty"`
	Course      int       `json:"course" db:"course"`
	Education   Education `json:"education" db:"education"`
	Description string    `json:"description" db:"description"`
	Link        string    `json:"link" db:"link"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Render produces the user-visible profile card. The field order (name,
// faculty, course, education, description, link) is the only representation
// of a profile users ever see, so it must not change.
func (p *Profile) Render() string {
	return fmt.Sprintf(
		"%s\nфакультет - '%s', курс - %d, музыкальное образование - %s\n%s\n<ссылка:%s>",
		p.Name, p.Faculty, p.Course, p.Education.Label(), p.Description, p.Link,
	)
}
