package resume

// Document is a parsed résumé as produced by the LLM parsing step, after
// schema validation. Optional scalars are pointers; nil means null.
type Document struct {
	FirstName  *string `json:"first_name"`
	MiddleName *string `json:"middle_name"`
	LastName   *string `json:"last_name"`
	ContactNo  *string `json:"contact_no"`
	Email      string  `json:"email" validate:"required"`

	Education      []EducationEntry  `json:"education"`
	Experience     []ExperienceEntry `json:"experience"`
	Skills         []string          `json:"skills"`
	Certifications []string          `json:"certifications"`

	// Warnings holds list entries the validator had to drop because of their
	// shape (e.g. a number where an object was expected).
	Warnings []UnresolvableEntityWarning `json:"-"`
}

type EducationEntry struct {
	University     *string  `json:"university"`
	Degree         *string  `json:"degree"`
	Major          *string  `json:"major"`
	CGPA           *float64 `json:"cgpa"`
	Scale          *float64 `json:"scale"`
	Minor          []string `json:"minor"`
	GraduationDate *string  `json:"graduation_date"`
}

type ExperienceEntry struct {
	Company     *string `json:"company"`
	Position    *string `json:"position"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

type UserNode struct {
	Email      string  `json:"email"`
	FirstName  *string `json:"first_name"`
	MiddleName *string `json:"middle_name"`
	LastName   *string `json:"last_name"`
	ContactNo  *string `json:"contact_no"`
}

// EducationKey is the Education natural key. Absent fields are "".
type EducationKey struct {
	University     string `json:"university"`
	Degree         string `json:"degree"`
	Major          string `json:"major"`
	GraduationDate string `json:"graduation_date"`
}

type EducationNode struct {
	EducationKey
	CGPA  *float64 `json:"cgpa"`
	Scale *float64 `json:"scale"`
	Minor []string `json:"minor"`
}

// ExperienceKey is the Experience natural key. Absent fields are "".
type ExperienceKey struct {
	Company  string `json:"company"`
	Position string `json:"position"`
}

type ExperienceNode struct {
	ExperienceKey
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// Profile is a User together with everything linked to it.
type Profile struct {
	User           UserNode         `json:"user"`
	Education      []EducationNode  `json:"education"`
	Experience     []ExperienceNode `json:"experience"`
	Skills         []string         `json:"skills"`
	Certifications []string         `json:"certifications"`
}

type EntityKind string

const (
	EntityUser          EntityKind = "user"
	EntityEducation     EntityKind = "education"
	EntityExperience    EntityKind = "experience"
	EntitySkill         EntityKind = "skill"
	EntityCertification EntityKind = "certification"
)
