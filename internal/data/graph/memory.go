package graph

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/yungbote/careergraph-backend/internal/domain/resume"
)

// MemoryStore is an in-process Store with the same merge semantics as the
// Cypher templates. Write transactions are serialized and work on a copy of
// the graph that replaces the live one only on success.
type MemoryStore struct {
	mu    sync.Mutex
	state memState

	open   atomic.Int64
	opened atomic.Int64
}

type memEdge struct {
	rel   string
	email string
	to    any
}

type memState struct {
	users          map[string]resume.UserNode
	education      map[resume.EducationKey]resume.EducationNode
	experience     map[resume.ExperienceKey]resume.ExperienceNode
	skills         map[string]struct{}
	certifications map[string]struct{}
	edges          map[memEdge]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: newMemState()}
}

func newMemState() memState {
	return memState{
		users:          map[string]resume.UserNode{},
		education:      map[resume.EducationKey]resume.EducationNode{},
		experience:     map[resume.ExperienceKey]resume.ExperienceNode{},
		skills:         map[string]struct{}{},
		certifications: map[string]struct{}{},
		edges:          map[memEdge]struct{}{},
	}
}

// Stored nodes never share pointers or slices with callers, so a shallow
// copy of each map is enough.
func (s memState) clone() memState {
	out := newMemState()
	for k, v := range s.users {
		out.users[k] = v
	}
	for k, v := range s.education {
		out.education[k] = v
	}
	for k, v := range s.experience {
		out.experience[k] = v
	}
	for k := range s.skills {
		out.skills[k] = struct{}{}
	}
	for k := range s.certifications {
		out.certifications[k] = struct{}{}
	}
	for k := range s.edges {
		out.edges[k] = struct{}{}
	}
	return out
}

type MemoryStats struct {
	Users          int
	Education      int
	Experience     int
	Skills         int
	Certifications int
	Edges          map[string]int
}

func (m *MemoryStore) Stats() MemoryStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := MemoryStats{
		Users:          len(m.state.users),
		Education:      len(m.state.education),
		Experience:     len(m.state.experience),
		Skills:         len(m.state.skills),
		Certifications: len(m.state.certifications),
		Edges:          map[string]int{},
	}
	for e := range m.state.edges {
		st.Edges[e.rel]++
	}
	return st
}

// OpenSessions is the number of sessions not yet closed.
func (m *MemoryStore) OpenSessions() int { return int(m.open.Load()) }

// SessionsOpened is the number of sessions ever opened.
func (m *MemoryStore) SessionsOpened() int { return int(m.opened.Load()) }

func (m *MemoryStore) NewSession(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.open.Add(1)
	m.opened.Add(1)
	return &memSession{store: m}, nil
}

type memSession struct {
	store  *MemoryStore
	closed atomic.Bool
}

func (s *memSession) ExecuteWrite(ctx context.Context, fn func(tx WriteTx) error) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	work := s.store.state.clone()
	if err := fn(&memWriteTx{state: &work}); err != nil {
		return err
	}
	s.store.state = work
	return nil
}

func (s *memSession) ExecuteRead(ctx context.Context, fn func(tx ReadTx) error) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	return fn(&memReadTx{state: &s.store.state})
}

func (s *memSession) Close(ctx context.Context) error {
	if s.closed.CompareAndSwap(false, true) {
		s.store.open.Add(-1)
	}
	return nil
}

type memWriteTx struct {
	state *memState
}

func (t *memWriteTx) MergeUser(ctx context.Context, u resume.UserNode) error {
	cur, ok := t.state.users[u.Email]
	if !ok {
		cur = resume.UserNode{Email: u.Email}
	}
	cur.FirstName = coalesceString(u.FirstName, cur.FirstName)
	cur.MiddleName = coalesceString(u.MiddleName, cur.MiddleName)
	cur.LastName = coalesceString(u.LastName, cur.LastName)
	cur.ContactNo = coalesceString(u.ContactNo, cur.ContactNo)
	t.state.users[u.Email] = cur
	return nil
}

func (t *memWriteTx) MergeEducation(ctx context.Context, email string, e resume.EducationNode) error {
	if _, ok := t.state.users[email]; !ok {
		return nil
	}
	cur, ok := t.state.education[e.EducationKey]
	if !ok {
		cur = resume.EducationNode{EducationKey: e.EducationKey}
	}
	cur.CGPA = coalesceFloat(e.CGPA, cur.CGPA)
	cur.Scale = coalesceFloat(e.Scale, cur.Scale)
	if e.Minor != nil {
		cur.Minor = cloneStrings(e.Minor)
	}
	t.state.education[e.EducationKey] = cur
	t.state.edges[memEdge{rel: RelHasEducation, email: email, to: e.EducationKey}] = struct{}{}
	return nil
}

func (t *memWriteTx) MergeExperience(ctx context.Context, email string, x resume.ExperienceNode) error {
	if _, ok := t.state.users[email]; !ok {
		return nil
	}
	cur, ok := t.state.experience[x.ExperienceKey]
	if !ok {
		cur = resume.ExperienceNode{ExperienceKey: x.ExperienceKey}
	}
	cur.Description = coalesceString(x.Description, cur.Description)
	cur.StartDate = coalesceString(x.StartDate, cur.StartDate)
	cur.EndDate = coalesceString(x.EndDate, cur.EndDate)
	t.state.experience[x.ExperienceKey] = cur
	t.state.edges[memEdge{rel: RelHasExperience, email: email, to: x.ExperienceKey}] = struct{}{}
	return nil
}

func (t *memWriteTx) MergeSkill(ctx context.Context, email string, name string) error {
	if _, ok := t.state.users[email]; !ok {
		return nil
	}
	t.state.skills[name] = struct{}{}
	t.state.edges[memEdge{rel: RelHasSkill, email: email, to: name}] = struct{}{}
	return nil
}

func (t *memWriteTx) MergeCertification(ctx context.Context, email string, name string) error {
	if _, ok := t.state.users[email]; !ok {
		return nil
	}
	t.state.certifications[name] = struct{}{}
	t.state.edges[memEdge{rel: RelHasCertification, email: email, to: name}] = struct{}{}
	return nil
}

type memReadTx struct {
	state *memState
}

func (t *memReadTx) LoadProfile(ctx context.Context, email string) (*resume.Profile, error) {
	u, ok := t.state.users[email]
	if !ok {
		return nil, nil
	}
	p := &resume.Profile{
		User: resume.UserNode{
			Email:      u.Email,
			FirstName:  coalesceString(u.FirstName, nil),
			MiddleName: coalesceString(u.MiddleName, nil),
			LastName:   coalesceString(u.LastName, nil),
			ContactNo:  coalesceString(u.ContactNo, nil),
		},
		Education:      []resume.EducationNode{},
		Experience:     []resume.ExperienceNode{},
		Skills:         []string{},
		Certifications: []string{},
	}
	for e := range t.state.edges {
		if e.email != email {
			continue
		}
		switch e.rel {
		case RelHasEducation:
			node := t.state.education[e.to.(resume.EducationKey)]
			node.CGPA = coalesceFloat(node.CGPA, nil)
			node.Scale = coalesceFloat(node.Scale, nil)
			node.Minor = cloneStrings(node.Minor)
			p.Education = append(p.Education, node)
		case RelHasExperience:
			node := t.state.experience[e.to.(resume.ExperienceKey)]
			node.Description = coalesceString(node.Description, nil)
			node.StartDate = coalesceString(node.StartDate, nil)
			node.EndDate = coalesceString(node.EndDate, nil)
			p.Experience = append(p.Experience, node)
		case RelHasSkill:
			p.Skills = append(p.Skills, e.to.(string))
		case RelHasCertification:
			p.Certifications = append(p.Certifications, e.to.(string))
		}
	}
	sortProfile(p)
	return p, nil
}

func coalesceString(in, cur *string) *string {
	if in == nil {
		return cur
	}
	v := *in
	return &v
}

func coalesceFloat(in, cur *float64) *float64 {
	if in == nil {
		return cur
	}
	v := *in
	return &v
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}
