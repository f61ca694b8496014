package graph

import (
	"context"
	"fmt"
	"sort"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/careergraph-backend/internal/domain/resume"
	"github.com/yungbote/careergraph-backend/internal/platform/neo4jdb"
)

const cypherMergeUser = `
MERGE (u:User {email: $email})
SET u.first_name  = coalesce($first_name, u.first_name),
    u.middle_name = coalesce($middle_name, u.middle_name),
    u.last_name   = coalesce($last_name, u.last_name),
    u.contact_no  = coalesce($contact_no, u.contact_no)
`

const cypherMergeEducation = `
MATCH (u:User {email: $email})
MERGE (e:Education {
  university: $university,
  degree: $degree,
  major: $major,
  graduation_date: $graduation_date
})
SET e.cgpa  = coalesce($cgpa, e.cgpa),
    e.scale = coalesce($scale, e.scale),
    e.minor = coalesce($minor, e.minor)
MERGE (u)-[:HAS_EDUCATION]->(e)
`

const cypherMergeExperience = `
MATCH (u:User {email: $email})
MERGE (x:Experience {company: $company, position: $position})
SET x.description = coalesce($description, x.description),
    x.start_date  = coalesce($start_date, x.start_date),
    x.end_date    = coalesce($end_date, x.end_date)
MERGE (u)-[:HAS_EXPERIENCE]->(x)
`

const cypherMergeSkill = `
MATCH (u:User {email: $email})
MERGE (s:Skill {name: $name})
MERGE (u)-[:HAS_SKILL]->(s)
`

const cypherMergeCertification = `
MATCH (u:User {email: $email})
MERGE (c:Certification {name: $name})
MERGE (u)-[:HAS_CERTIFICATION]->(c)
`

const cypherLoadProfile = `
MATCH (u:User {email: $email})
OPTIONAL MATCH (u)-[:HAS_EDUCATION]->(e:Education)
WITH u, collect(DISTINCT e {.*}) AS education
OPTIONAL MATCH (u)-[:HAS_EXPERIENCE]->(x:Experience)
WITH u, education, collect(DISTINCT x {.*}) AS experience
OPTIONAL MATCH (u)-[:HAS_SKILL]->(s:Skill)
WITH u, education, experience, collect(DISTINCT s.name) AS skills
OPTIONAL MATCH (u)-[:HAS_CERTIFICATION]->(c:Certification)
RETURN u {.*} AS user, education, experience, skills, collect(DISTINCT c.name) AS certifications
`

// Neo4jStore is the production Store.
type Neo4jStore struct {
	client *neo4jdb.Client
}

func NewNeo4jStore(client *neo4jdb.Client) *Neo4jStore {
	return &Neo4jStore{client: client}
}

func (s *Neo4jStore) NewSession(ctx context.Context) (Session, error) {
	if s == nil || s.client == nil || s.client.Driver == nil {
		return nil, ErrNoStore
	}
	sess := s.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.client.Database,
	})
	return &neo4jSession{session: sess}, nil
}

type neo4jSession struct {
	session neo4j.SessionWithContext
}

func (s *neo4jSession) ExecuteWrite(ctx context.Context, fn func(tx WriteTx) error) error {
	_, err := s.session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, fn(&cypherTx{run: managedRunner(tx)})
	})
	return err
}

func (s *neo4jSession) ExecuteRead(ctx context.Context, fn func(tx ReadTx) error) error {
	_, err := s.session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, fn(&cypherReadTx{tx: tx})
	})
	return err
}

func (s *neo4jSession) Close(ctx context.Context) error {
	return s.session.Close(ctx)
}

type runFunc func(ctx context.Context, cypher string, params map[string]any) error

func managedRunner(tx neo4j.ManagedTransaction) runFunc {
	return func(ctx context.Context, cypher string, params map[string]any) error {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return err
		}
		_, err = res.Consume(ctx)
		return err
	}
}

// cypherTx renders each merge as a parameterized statement. Nil attributes
// are sent as null so coalesce keeps the stored value.
type cypherTx struct {
	run runFunc
}

func (t *cypherTx) MergeUser(ctx context.Context, u resume.UserNode) error {
	return t.run(ctx, cypherMergeUser, map[string]any{
		"email":       u.Email,
		"first_name":  optString(u.FirstName),
		"middle_name": optString(u.MiddleName),
		"last_name":   optString(u.LastName),
		"contact_no":  optString(u.ContactNo),
	})
}

func (t *cypherTx) MergeEducation(ctx context.Context, email string, e resume.EducationNode) error {
	return t.run(ctx, cypherMergeEducation, map[string]any{
		"email":           email,
		"university":      e.University,
		"degree":          e.Degree,
		"major":           e.Major,
		"graduation_date": e.GraduationDate,
		"cgpa":            optFloat(e.CGPA),
		"scale":           optFloat(e.Scale),
		"minor":           optList(e.Minor),
	})
}

func (t *cypherTx) MergeExperience(ctx context.Context, email string, x resume.ExperienceNode) error {
	return t.run(ctx, cypherMergeExperience, map[string]any{
		"email":       email,
		"company":     x.Company,
		"position":    x.Position,
		"description": optString(x.Description),
		"start_date":  optString(x.StartDate),
		"end_date":    optString(x.EndDate),
	})
}

func (t *cypherTx) MergeSkill(ctx context.Context, email string, name string) error {
	return t.run(ctx, cypherMergeSkill, map[string]any{"email": email, "name": name})
}

func (t *cypherTx) MergeCertification(ctx context.Context, email string, name string) error {
	return t.run(ctx, cypherMergeCertification, map[string]any{"email": email, "name": name})
}

type cypherReadTx struct {
	tx neo4j.ManagedTransaction
}

func (t *cypherReadTx) LoadProfile(ctx context.Context, email string) (*resume.Profile, error) {
	res, err := t.tx.Run(ctx, cypherLoadProfile, map[string]any{"email": email})
	if err != nil {
		return nil, err
	}
	if !res.Next(ctx) {
		if err := res.Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	rec := res.Record()
	user, _ := recordValue(rec, "user").(map[string]any)
	if user == nil {
		return nil, fmt.Errorf("graph: profile record without user")
	}
	return profileFromValues(
		user,
		asSlice(recordValue(rec, "education")),
		asSlice(recordValue(rec, "experience")),
		asSlice(recordValue(rec, "skills")),
		asSlice(recordValue(rec, "certifications")),
	), nil
}

func recordValue(rec *neo4j.Record, key string) any {
	if rec == nil {
		return nil
	}
	v, ok := rec.Get(key)
	if !ok {
		return nil
	}
	return v
}

func profileFromValues(user map[string]any, education, experience, skills, certifications []any) *resume.Profile {
	p := &resume.Profile{
		User: resume.UserNode{
			Email:      getString(user, "email"),
			FirstName:  getOptString(user, "first_name"),
			MiddleName: getOptString(user, "middle_name"),
			LastName:   getOptString(user, "last_name"),
			ContactNo:  getOptString(user, "contact_no"),
		},
		Education:      make([]resume.EducationNode, 0, len(education)),
		Experience:     make([]resume.ExperienceNode, 0, len(experience)),
		Skills:         make([]string, 0, len(skills)),
		Certifications: make([]string, 0, len(certifications)),
	}
	for _, raw := range education {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		p.Education = append(p.Education, resume.EducationNode{
			EducationKey: resume.EducationKey{
				University:     getString(m, "university"),
				Degree:         getString(m, "degree"),
				Major:          getString(m, "major"),
				GraduationDate: getString(m, "graduation_date"),
			},
			CGPA:  getOptFloat(m, "cgpa"),
			Scale: getOptFloat(m, "scale"),
			Minor: getStringSlice(m, "minor"),
		})
	}
	for _, raw := range experience {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		p.Experience = append(p.Experience, resume.ExperienceNode{
			ExperienceKey: resume.ExperienceKey{
				Company:  getString(m, "company"),
				Position: getString(m, "position"),
			},
			Description: getOptString(m, "description"),
			StartDate:   getOptString(m, "start_date"),
			EndDate:     getOptString(m, "end_date"),
		})
	}
	for _, raw := range skills {
		if s, ok := raw.(string); ok {
			p.Skills = append(p.Skills, s)
		}
	}
	for _, raw := range certifications {
		if s, ok := raw.(string); ok {
			p.Certifications = append(p.Certifications, s)
		}
	}
	sortProfile(p)
	return p
}

func sortProfile(p *resume.Profile) {
	sort.Slice(p.Education, func(i, j int) bool {
		a, b := p.Education[i].EducationKey, p.Education[j].EducationKey
		if a.University != b.University {
			return a.University < b.University
		}
		if a.Degree != b.Degree {
			return a.Degree < b.Degree
		}
		if a.Major != b.Major {
			return a.Major < b.Major
		}
		return a.GraduationDate < b.GraduationDate
	})
	sort.Slice(p.Experience, func(i, j int) bool {
		a, b := p.Experience[i].ExperienceKey, p.Experience[j].ExperienceKey
		if a.Company != b.Company {
			return a.Company < b.Company
		}
		return a.Position < b.Position
	})
	sort.Strings(p.Skills)
	sort.Strings(p.Certifications)
}

func retryable(err error) bool {
	return err != nil && neo4j.IsRetryable(err)
}

func optString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func optFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func optList(l []string) any {
	if l == nil {
		return nil
	}
	return l
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func getString(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func getOptString(m map[string]any, key string) *string {
	if s, ok := m[key].(string); ok {
		return &s
	}
	return nil
}

func getOptFloat(m map[string]any, key string) *float64 {
	switch v := m[key].(type) {
	case float64:
		return &v
	case int64:
		f := float64(v)
		return &f
	default:
		return nil
	}
}

func getStringSlice(m map[string]any, key string) []string {
	switch v := m[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, it := range v {
			if s, ok := it.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
