package service

import (
	"errors"
	"questionnaire_backend/internal/config"
	"questionnaire_backend/internal/model"
	"regexp"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

var errInjected = errors.New("injected failure")

// memDB 内存存储，供各服务测试共用
type memDB struct {
	nextID uint

	questionnaires map[uint]*model.Questionnaire
	questions      map[uint]*model.Question
	choices        map[uint]*model.QuizQuestionChoice
	advice         map[uint]*model.QuestionAdvice
	answers        []model.Answer
	assignments    map[uint]*model.Assignment
	links          map[uint]*model.AssignmentQuestionnaire
	participants   map[uint]*model.AssignmentParticipant
	teams          map[uint]*model.AssignmentTeam
	folders        map[uint]*model.TreeFolder
	nodes          map[uint]*model.TreeNode
	users          map[uint]*model.User

	// failQuestionCreateAt 第 N 次创建题目时失败，0 表示不注入
	failQuestionCreateAt int
	questionCreates      int
	failAdviceCreate     bool
	deleteCascadeCalls   int
}

func newMemDB() *memDB {
	return &memDB{
		questionnaires: map[uint]*model.Questionnaire{},
		questions:      map[uint]*model.Question{},
		choices:        map[uint]*model.QuizQuestionChoice{},
		advice:         map[uint]*model.QuestionAdvice{},
		assignments:    map[uint]*model.Assignment{},
		links:          map[uint]*model.AssignmentQuestionnaire{},
		participants:   map[uint]*model.AssignmentParticipant{},
		teams:          map[uint]*model.AssignmentTeam{},
		folders:        map[uint]*model.TreeFolder{},
		nodes:          map[uint]*model.TreeNode{},
		users:          map[uint]*model.User{},
	}
}

func (m *memDB) id() uint {
	m.nextID++
	return m.nextID
}

func sortedKeys[V any](items map[uint]V) []uint {
	keys := make([]uint, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (m *memDB) questionsOf(questionnaireID uint) []model.Question {
	var qs []model.Question
	for _, id := range sortedKeys(m.questions) {
		if q := m.questions[id]; q.QuestionnaireID == questionnaireID {
			qs = append(qs, *q)
		}
	}
	sort.SliceStable(qs, func(i, j int) bool { return qs[i].Seq < qs[j].Seq })
	return qs
}

func (m *memDB) choicesOf(questionID uint) []model.QuizQuestionChoice {
	var cs []model.QuizQuestionChoice
	for _, id := range sortedKeys(m.choices) {
		if c := m.choices[id]; c.QuestionID == questionID {
			cs = append(cs, *c)
		}
	}
	return cs
}

func (m *memDB) adviceOf(questionID uint) []model.QuestionAdvice {
	var as []model.QuestionAdvice
	for _, id := range sortedKeys(m.advice) {
		if a := m.advice[id]; a.QuestionID == questionID {
			as = append(as, *a)
		}
	}
	return as
}

func (m *memDB) deleteQuestion(id uint) {
	for cid, c := range m.choices {
		if c.QuestionID == id {
			delete(m.choices, cid)
		}
	}
	for aid, a := range m.advice {
		if a.QuestionID == id {
			delete(m.advice, aid)
		}
	}
	delete(m.questions, id)
}

// seed helpers

func (m *memDB) addQuestionnaire(q model.Questionnaire) *model.Questionnaire {
	q.ID = m.id()
	q.CreatedAt = time.Now()
	m.questionnaires[q.ID] = &q
	return &q
}

func (m *memDB) addQuestion(q model.Question) *model.Question {
	q.ID = m.id()
	m.questions[q.ID] = &q
	return &q
}

func (m *memDB) addAdvice(a model.QuestionAdvice) {
	a.ID = m.id()
	m.advice[a.ID] = &a
}

func (m *memDB) addChoice(c model.QuizQuestionChoice) {
	c.ID = m.id()
	m.choices[c.ID] = &c
}

func (m *memDB) addAnswer(questionID uint) {
	m.answers = append(m.answers, model.Answer{QuestionID: questionID})
}

func (m *memDB) addAssignment(a model.Assignment) *model.Assignment {
	a.ID = m.id()
	m.assignments[a.ID] = &a
	return &a
}

func (m *memDB) addLink(l model.AssignmentQuestionnaire) *model.AssignmentQuestionnaire {
	l.ID = m.id()
	m.links[l.ID] = &l
	return &l
}

func (m *memDB) addParticipant(p model.AssignmentParticipant) *model.AssignmentParticipant {
	p.ID = m.id()
	m.participants[p.ID] = &p
	return &p
}

func (m *memDB) addTeam(t model.AssignmentTeam) *model.AssignmentTeam {
	t.ID = m.id()
	m.teams[t.ID] = &t
	return &t
}

// seedFolders 写入默认目录和对应的 FolderNode
func (m *memDB) seedFolders() {
	for _, name := range model.DefaultTreeFolders {
		f := &model.TreeFolder{Name: name}
		f.ID = m.id()
		m.folders[f.ID] = f
		n := &model.TreeNode{NodeObjectID: f.ID, Type: model.FolderNodeType}
		n.ID = m.id()
		m.nodes[n.ID] = n
	}
}

func (m *memDB) questionnaireNodes() []model.TreeNode {
	var ns []model.TreeNode
	for _, id := range sortedKeys(m.nodes) {
		if n := m.nodes[id]; n.Type == model.QuestionnaireNodeType {
			ns = append(ns, *n)
		}
	}
	return ns
}

type fakeQuestionnaires struct{ db *memDB }

func (f fakeQuestionnaires) Create(q *model.Questionnaire) error {
	q.ID = f.db.id()
	stored := *q
	stored.Questions = nil
	f.db.questionnaires[q.ID] = &stored
	return nil
}

func (f fakeQuestionnaires) FindByID(id uint) (*model.Questionnaire, error) {
	q, ok := f.db.questionnaires[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *q
	return &out, nil
}

func (f fakeQuestionnaires) FindWithQuestions(id uint) (*model.Questionnaire, error) {
	q, err := f.FindByID(id)
	if err != nil {
		return nil, err
	}
	q.Questions = f.db.questionsOf(id)
	for i := range q.Questions {
		q.Questions[i].Choices = f.db.choicesOf(q.Questions[i].ID)
		q.Questions[i].Advice = f.db.adviceOf(q.Questions[i].ID)
	}
	return q, nil
}

func (f fakeQuestionnaires) ExistsByNameAndOwner(name string, ownerID, excludeID uint) (bool, error) {
	for _, q := range f.db.questionnaires {
		if q.Name == name && q.InstructorID == ownerID && q.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeQuestionnaires) ListByOwner(ownerID uint, page, limit int) ([]model.Questionnaire, int64, error) {
	var all []model.Questionnaire
	for _, id := range sortedKeys(f.db.questionnaires) {
		if q := f.db.questionnaires[id]; q.InstructorID == ownerID {
			all = append(all, *q)
		}
	}
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []model.Questionnaire{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f fakeQuestionnaires) Update(q *model.Questionnaire) error {
	if _, ok := f.db.questionnaires[q.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *q
	stored.Questions = nil
	f.db.questionnaires[q.ID] = &stored
	return nil
}

func (f fakeQuestionnaires) DeleteCascade(id uint) error {
	f.db.deleteCascadeCalls++
	for _, q := range f.db.questionsOf(id) {
		f.db.deleteQuestion(q.ID)
	}
	for nid, n := range f.db.nodes {
		if n.Type == model.QuestionnaireNodeType && n.NodeObjectID == id {
			delete(f.db.nodes, nid)
		}
	}
	for lid, l := range f.db.links {
		if l.QuestionnaireID == id {
			delete(f.db.links, lid)
		}
	}
	delete(f.db.questionnaires, id)
	return nil
}

type fakeQuestions struct{ db *memDB }

func (f fakeQuestions) Create(q *model.Question) error {
	f.db.questionCreates++
	if f.db.failQuestionCreateAt == f.db.questionCreates {
		return errInjected
	}
	q.ID = f.db.id()
	stored := *q
	stored.Choices = nil
	stored.Advice = nil
	f.db.questions[q.ID] = &stored
	return nil
}

func (f fakeQuestions) CreateBatch(questions []model.Question) error {
	for i := range questions {
		if err := f.Create(&questions[i]); err != nil {
			for _, created := range questions[:i] {
				delete(f.db.questions, created.ID)
			}
			return err
		}
	}
	return nil
}

func (f fakeQuestions) FindByID(id uint) (*model.Question, error) {
	q, ok := f.db.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *q
	return &out, nil
}

func (f fakeQuestions) ListByQuestionnaire(questionnaireID uint) ([]model.Question, error) {
	return f.db.questionsOf(questionnaireID), nil
}

func (f fakeQuestions) CountByQuestionnaire(questionnaireID uint) (int64, error) {
	return int64(len(f.db.questionsOf(questionnaireID))), nil
}

func (f fakeQuestions) Update(q *model.Question) error {
	if _, ok := f.db.questions[q.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *q
	f.db.questions[q.ID] = &stored
	return nil
}

func (f fakeQuestions) Delete(id uint) error {
	f.db.deleteQuestion(id)
	return nil
}

func (f fakeQuestions) CreateChoices(choices []model.QuizQuestionChoice) error {
	for i := range choices {
		choices[i].ID = f.db.id()
		c := choices[i]
		f.db.choices[c.ID] = &c
	}
	return nil
}

func (f fakeQuestions) ListChoices(questionID uint) ([]model.QuizQuestionChoice, error) {
	return f.db.choicesOf(questionID), nil
}

func (f fakeQuestions) UpdateChoice(c *model.QuizQuestionChoice) error {
	stored, ok := f.db.choices[c.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Txt = c.Txt
	stored.IsCorrect = c.IsCorrect
	return nil
}

func (f fakeQuestions) CreateAdvice(a *model.QuestionAdvice) error {
	if f.db.failAdviceCreate {
		return errInjected
	}
	a.ID = f.db.id()
	stored := *a
	f.db.advice[a.ID] = &stored
	return nil
}

func (f fakeQuestions) ListAdvice(questionID uint) ([]model.QuestionAdvice, error) {
	return f.db.adviceOf(questionID), nil
}

func (f fakeQuestions) ListAdviceByQuestionnaire(questionnaireID uint) ([]model.QuestionAdvice, error) {
	var out []model.QuestionAdvice
	for _, q := range f.db.questionsOf(questionnaireID) {
		out = append(out, f.db.adviceOf(q.ID)...)
	}
	return out, nil
}

func (f fakeQuestions) ReplaceAdvice(questionID uint, advice []model.QuestionAdvice) error {
	for aid, a := range f.db.advice {
		if a.QuestionID == questionID {
			delete(f.db.advice, aid)
		}
	}
	for i := range advice {
		if err := f.CreateAdvice(&advice[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f fakeQuestions) CountAnswers(questionnaireID uint) (int64, error) {
	var n int64
	for _, a := range f.db.answers {
		if q, ok := f.db.questions[a.QuestionID]; ok && q.QuestionnaireID == questionnaireID {
			n++
		}
	}
	return n, nil
}

func (f fakeQuestions) SumWeights(questionnaireID uint) (int, error) {
	sum := 0
	for _, q := range f.db.questionsOf(questionnaireID) {
		sum += q.WeightOrZero()
	}
	return sum, nil
}

type fakeAssignments struct{ db *memDB }

func (f fakeAssignments) FindByID(id uint) (*model.Assignment, error) {
	a, ok := f.db.assignments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *a
	return &out, nil
}

func (f fakeAssignments) FindLink(assignmentID, questionnaireID uint) (*model.AssignmentQuestionnaire, error) {
	for _, id := range sortedKeys(f.db.links) {
		l := f.db.links[id]
		if l.AssignmentID == assignmentID && l.QuestionnaireID == questionnaireID {
			out := *l
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f fakeAssignments) FirstLinkedAssignment(questionnaireID uint) (*model.Assignment, error) {
	for _, id := range sortedKeys(f.db.links) {
		l := f.db.links[id]
		if l.QuestionnaireID == questionnaireID {
			if a, ok := f.db.assignments[l.AssignmentID]; ok {
				out := *a
				return &out, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f fakeAssignments) ListLinks(assignmentID uint) ([]model.AssignmentQuestionnaire, error) {
	var out []model.AssignmentQuestionnaire
	for _, id := range sortedKeys(f.db.links) {
		if l := f.db.links[id]; l.AssignmentID == assignmentID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f fakeAssignments) SaveLink(link *model.AssignmentQuestionnaire) error {
	if link.ID == 0 {
		link.ID = f.db.id()
	}
	stored := *link
	f.db.links[link.ID] = &stored
	return nil
}

func (f fakeAssignments) DeleteLink(assignmentID, questionnaireID uint) error {
	for id, l := range f.db.links {
		if l.AssignmentID == assignmentID && l.QuestionnaireID == questionnaireID {
			delete(f.db.links, id)
		}
	}
	return nil
}

func (f fakeAssignments) FindParticipant(id uint) (*model.AssignmentParticipant, error) {
	p, ok := f.db.participants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *p
	return &out, nil
}

func (f fakeAssignments) FindTeam(id uint) (*model.AssignmentTeam, error) {
	t, ok := f.db.teams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *t
	return &out, nil
}

type fakePlacement struct{ db *memDB }

// likePattern 将 SQL LIKE 模式转换为正则
func likePattern(pattern string) *regexp.Regexp {
	parts := strings.Split(pattern, "%")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile("^" + strings.Join(parts, ".*") + "$")
}

func (f fakePlacement) FindFolderByName(pattern string) (*model.TreeFolder, error) {
	re := likePattern(pattern)
	for _, id := range sortedKeys(f.db.folders) {
		if folder := f.db.folders[id]; re.MatchString(folder.Name) {
			out := *folder
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f fakePlacement) FindFolderNode(folderID uint) (*model.TreeNode, error) {
	for _, id := range sortedKeys(f.db.nodes) {
		if n := f.db.nodes[id]; n.Type == model.FolderNodeType && n.NodeObjectID == folderID {
			out := *n
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f fakePlacement) FindOrCreateQuestionnaireNode(parentID, questionnaireID uint) (*model.TreeNode, error) {
	for _, n := range f.db.nodes {
		if n.Type == model.QuestionnaireNodeType && n.NodeObjectID == questionnaireID &&
			n.ParentID != nil && *n.ParentID == parentID {
			out := *n
			return &out, nil
		}
	}
	pid := parentID
	n := &model.TreeNode{ParentID: &pid, NodeObjectID: questionnaireID, Type: model.QuestionnaireNodeType}
	n.ID = f.db.id()
	f.db.nodes[n.ID] = n
	out := *n
	return &out, nil
}

type fakeUsers struct{ db *memDB }

func (f fakeUsers) FindByID(id uint) (*model.User, error) {
	u, ok := f.db.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *u
	return &out, nil
}

func (f fakeUsers) FindByEmail(email string) (*model.User, error) {
	for _, id := range sortedKeys(f.db.users) {
		if u := f.db.users[id]; u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f fakeUsers) UpdateLastLogin(userID uint) error {
	u, ok := f.db.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.LastLogin = time.Now()
	return nil
}

// fakeCache 记录读写次数的最大得分缓存
type fakeCache struct {
	scores      map[uint]int
	hits        int
	invalidated []uint
}

func newFakeCache() *fakeCache {
	return &fakeCache{scores: map[uint]int{}}
}

func (c *fakeCache) GetMaxScore(questionnaireID uint) (int, bool, error) {
	score, ok := c.scores[questionnaireID]
	if ok {
		c.hits++
	}
	return score, ok, nil
}

func (c *fakeCache) SetMaxScore(questionnaireID uint, score int) error {
	c.scores[questionnaireID] = score
	return nil
}

func (c *fakeCache) InvalidateMaxScore(questionnaireID uint) error {
	delete(c.scores, questionnaireID)
	c.invalidated = append(c.invalidated, questionnaireID)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret-test-secret-test-secret", ExpireTime: time.Hour},
		Questionnaire: config.QuestionnaireConfig{
			DefaultMinQuestionScore: 0,
			DefaultMaxQuestionScore: 5,
			InstructionURL:          "http://www.courses.ncsu.edu/csc517",
		},
	}
}

// fixture 组装好依赖的服务集合
type fixture struct {
	db            *memDB
	cache         *fakeCache
	cfg           *config.Config
	placement     *PlacementService
	scoring       *ScoringService
	questionnaire *QuestionnaireService
	quiz          *QuizService
	assignment    *AssignmentService
}

func newFixture() *fixture {
	db := newMemDB()
	db.seedFolders()
	cache := newFakeCache()
	cfg := testConfig()

	questionnaires := fakeQuestionnaires{db}
	questions := fakeQuestions{db}
	assignments := fakeAssignments{db}

	placement := NewPlacementService(fakePlacement{db})
	scoring := NewScoringService(questionnaires, questions, assignments, cache)
	return &fixture{
		db:            db,
		cache:         cache,
		cfg:           cfg,
		placement:     placement,
		scoring:       scoring,
		questionnaire: NewQuestionnaireService(questionnaires, questions, assignments, placement, scoring, cfg),
		quiz:          NewQuizService(questionnaires, questions, assignments, cfg),
		assignment:    NewAssignmentService(assignments, questionnaires, scoring),
	}
}

func uintPtr(v uint) *uint { return &v }
func boolPtr(v bool) *bool { return &v }

var (
	instructor = ActingUser{ID: 7, Role: model.Instructor}
	otherProf  = ActingUser{ID: 8, Role: model.Instructor}
	admin      = ActingUser{ID: 1, Role: model.Admin}
	ta         = ActingUser{ID: 20, Role: model.TeachingAssistant, SupervisorID: uintPtr(7)}
	student    = ActingUser{ID: 30, Role: model.Student}
)
