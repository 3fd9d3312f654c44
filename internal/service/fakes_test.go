package service

import (
	"context"
	"sort"
	"sync"

	"ai-chatbot-be/internal/entity"
	"ai-chatbot-be/internal/repository/contract"
	"ai-chatbot-be/internal/repository/specification"
	"ai-chatbot-be/internal/repository/unitofwork"
	"ai-chatbot-be/pkg/llm"

	"github.com/google/uuid"
)

// fakeStore is the shared in-memory state behind the fake unit of work.
type fakeStore struct {
	mu        sync.Mutex
	users     []*entity.User
	threads   []*entity.Thread
	chats     []*entity.Chat
	feedbacks []*entity.Feedback
	logs      []*entity.ActivityLog
	documents []*entity.KnowledgeDocument
}

type fakeUowFactory struct {
	store *fakeStore
}

func newFakeUowFactory() *fakeUowFactory {
	return &fakeUowFactory{store: &fakeStore{}}
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

// fakeUow snapshots state on Begin and restores it on Rollback, mirroring
// transactional behavior closely enough for service-level tests.
type fakeUow struct {
	store     *fakeStore
	snapshot  *fakeStore
	inTx      bool
	committed bool
}

func copySlice[T any](in []*T) []*T {
	out := make([]*T, len(in))
	for i, v := range in {
		c := *v
		out[i] = &c
	}
	return out
}

func (u *fakeUow) Begin(ctx context.Context) error {
	u.store.mu.Lock()
	u.snapshot = &fakeStore{
		users:     copySlice(u.store.users),
		threads:   copySlice(u.store.threads),
		chats:     copySlice(u.store.chats),
		feedbacks: copySlice(u.store.feedbacks),
		logs:      copySlice(u.store.logs),
		documents: copySlice(u.store.documents),
	}
	u.store.mu.Unlock()
	u.inTx = true
	u.committed = false
	return nil
}

func (u *fakeUow) Commit() error {
	u.committed = true
	u.inTx = false
	return nil
}

func (u *fakeUow) Rollback() error {
	if !u.inTx || u.committed || u.snapshot == nil {
		return nil
	}
	u.store.mu.Lock()
	u.store.users = u.snapshot.users
	u.store.threads = u.snapshot.threads
	u.store.chats = u.snapshot.chats
	u.store.feedbacks = u.snapshot.feedbacks
	u.store.logs = u.snapshot.logs
	u.store.documents = u.snapshot.documents
	u.store.mu.Unlock()
	u.inTx = false
	return nil
}

func (u *fakeUow) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}

func (u *fakeUow) ThreadRepository() contract.ThreadRepository {
	return &fakeThreadRepo{store: u.store}
}

func (u *fakeUow) ChatRepository() contract.ChatRepository {
	return &fakeChatRepo{store: u.store}
}

func (u *fakeUow) FeedbackRepository() contract.FeedbackRepository {
	return &fakeFeedbackRepo{store: u.store}
}

func (u *fakeUow) ActivityLogRepository() contract.ActivityLogRepository {
	return &fakeActivityLogRepo{store: u.store}
}

func (u *fakeUow) DocumentRepository() contract.DocumentRepository {
	return &fakeDocumentRepo{store: u.store}
}

// --- spec interpretation helpers ---

type listQuery struct {
	id         *uuid.UUID
	owner      *uuid.UUID
	threadID   *uuid.UUID
	threadIDs  []uuid.UUID
	chatID     *uuid.UUID
	email      *string
	eventType  *string
	isPositive *bool
	orderField string
	orderDesc  bool
	limit      int
	offset     int
}

func parseSpecs(specs []specification.Specification) listQuery {
	q := listQuery{limit: -1}
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByID:
			id := spec.ID
			q.id = &id
		case specification.OwnedBy:
			owner := spec.UserID
			q.owner = &owner
		case specification.OptionallyOwnedBy:
			q.owner = spec.UserID
		case specification.ByThreadID:
			id := spec.ThreadID
			q.threadID = &id
		case specification.ByThreadIDs:
			q.threadIDs = spec.ThreadIDs
		case specification.ByChatID:
			id := spec.ChatID
			q.chatID = &id
		case specification.ByEmail:
			email := spec.Email
			q.email = &email
		case specification.ByEventType:
			et := spec.EventType
			q.eventType = &et
		case specification.OptionallyPositive:
			q.isPositive = spec.IsPositive
		case specification.OrderBy:
			q.orderField = spec.Field
			q.orderDesc = spec.Desc
		case specification.Pagination:
			q.limit = spec.Limit
			q.offset = spec.Offset
		}
	}
	return q
}

func paginate[T any](in []*T, q listQuery) []*T {
	if q.offset > 0 {
		if q.offset >= len(in) {
			return nil
		}
		in = in[q.offset:]
	}
	if q.limit >= 0 && q.limit < len(in) {
		in = in[:q.limit]
	}
	return in
}

// --- thread repo ---

type fakeThreadRepo struct {
	store *fakeStore
}

func (r *fakeThreadRepo) filter(q listQuery) []*entity.Thread {
	var out []*entity.Thread
	for _, t := range r.store.threads {
		if q.id != nil && t.Id != *q.id {
			continue
		}
		if q.owner != nil && t.UserId != *q.owner {
			continue
		}
		out = append(out, t)
	}
	switch q.orderField {
	case "last_chat_at":
		sort.SliceStable(out, func(i, j int) bool {
			if q.orderDesc {
				return out[i].LastChatAt.After(out[j].LastChatAt)
			}
			return out[i].LastChatAt.Before(out[j].LastChatAt)
		})
	case "created_at":
		sort.SliceStable(out, func(i, j int) bool {
			if q.orderDesc {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	}
	return out
}

func (r *fakeThreadRepo) Create(ctx context.Context, thread *entity.Thread) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *thread
	r.store.threads = append(r.store.threads, &c)
	return nil
}

func (r *fakeThreadRepo) Update(ctx context.Context, thread *entity.Thread) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, t := range r.store.threads {
		if t.Id == thread.Id {
			c := *thread
			r.store.threads[i] = &c
			return nil
		}
	}
	return nil
}

func (r *fakeThreadRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := r.store.threads[:0]
	for _, t := range r.store.threads {
		if t.Id != id {
			out = append(out, t)
		}
	}
	r.store.threads = out
	return nil
}

func (r *fakeThreadRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Thread, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	matches := r.filter(parseSpecs(specs))
	if len(matches) == 0 {
		return nil, nil
	}
	c := *matches[0]
	return &c, nil
}

func (r *fakeThreadRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Thread, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := parseSpecs(specs)
	return copySlice(paginate(r.filter(q), q)), nil
}

func (r *fakeThreadRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.filter(parseSpecs(specs)))), nil
}

// --- chat repo ---

type fakeChatRepo struct {
	store *fakeStore
}

func (r *fakeChatRepo) filter(q listQuery) []*entity.Chat {
	var out []*entity.Chat
	for _, c := range r.store.chats {
		if q.id != nil && c.Id != *q.id {
			continue
		}
		if q.owner != nil && c.UserId != *q.owner {
			continue
		}
		if q.threadID != nil && c.ThreadId != *q.threadID {
			continue
		}
		if len(q.threadIDs) > 0 {
			found := false
			for _, id := range q.threadIDs {
				if c.ThreadId == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, c)
	}
	if q.orderField == "created_at" {
		sort.SliceStable(out, func(i, j int) bool {
			if q.orderDesc {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	}
	return out
}

func (r *fakeChatRepo) Create(ctx context.Context, chat *entity.Chat) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *chat
	r.store.chats = append(r.store.chats, &c)
	return nil
}

func (r *fakeChatRepo) DeleteByThreadId(ctx context.Context, threadId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := r.store.chats[:0]
	for _, c := range r.store.chats {
		if c.ThreadId != threadId {
			out = append(out, c)
		}
	}
	r.store.chats = out
	return nil
}

func (r *fakeChatRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	matches := r.filter(parseSpecs(specs))
	if len(matches) == 0 {
		return nil, nil
	}
	c := *matches[0]
	return &c, nil
}

func (r *fakeChatRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := parseSpecs(specs)
	return copySlice(paginate(r.filter(q), q)), nil
}

func (r *fakeChatRepo) FindAllWithAuthor(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatWithAuthor, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := parseSpecs(specs)
	chats := paginate(r.filter(q), q)
	out := make([]*entity.ChatWithAuthor, 0, len(chats))
	for _, c := range chats {
		row := &entity.ChatWithAuthor{Chat: *c}
		for _, u := range r.store.users {
			if u.Id == c.UserId {
				row.UserEmail = u.Email
				row.UserName = u.Name
				break
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeChatRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.filter(parseSpecs(specs)))), nil
}

// --- user repo ---

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *user
	r.store.users = append(r.store.users, &c)
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := parseSpecs(specs)
	for _, u := range r.store.users {
		if q.id != nil && u.Id != *q.id {
			continue
		}
		if q.email != nil && u.Email != *q.email {
			continue
		}
		c := *u
		return &c, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.users)), nil
}

// --- feedback repo ---

type fakeFeedbackRepo struct {
	store *fakeStore
}

func (r *fakeFeedbackRepo) filter(q listQuery) []*entity.Feedback {
	var out []*entity.Feedback
	for _, f := range r.store.feedbacks {
		if q.id != nil && f.Id != *q.id {
			continue
		}
		if q.owner != nil && f.UserId != *q.owner {
			continue
		}
		if q.chatID != nil && f.ChatId != *q.chatID {
			continue
		}
		if q.isPositive != nil && f.IsPositive != *q.isPositive {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (r *fakeFeedbackRepo) Create(ctx context.Context, feedback *entity.Feedback) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *feedback
	r.store.feedbacks = append(r.store.feedbacks, &c)
	return nil
}

func (r *fakeFeedbackRepo) Update(ctx context.Context, feedback *entity.Feedback) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, f := range r.store.feedbacks {
		if f.Id == feedback.Id {
			c := *feedback
			r.store.feedbacks[i] = &c
			return nil
		}
	}
	return nil
}

func (r *fakeFeedbackRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Feedback, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	matches := r.filter(parseSpecs(specs))
	if len(matches) == 0 {
		return nil, nil
	}
	c := *matches[0]
	return &c, nil
}

func (r *fakeFeedbackRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Feedback, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := parseSpecs(specs)
	return copySlice(paginate(r.filter(q), q)), nil
}

func (r *fakeFeedbackRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.filter(parseSpecs(specs)))), nil
}

// --- activity log repo ---

type fakeActivityLogRepo struct {
	store *fakeStore
}

func (r *fakeActivityLogRepo) Create(ctx context.Context, logEntry *entity.ActivityLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *logEntry
	r.store.logs = append(r.store.logs, &c)
	return nil
}

func (r *fakeActivityLogRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := parseSpecs(specs)
	var n int64
	for _, l := range r.store.logs {
		if q.eventType != nil && string(l.EventType) != *q.eventType {
			continue
		}
		n++
	}
	return n, nil
}

// --- document repo ---

type fakeDocumentRepo struct {
	store *fakeStore
}

func (r *fakeDocumentRepo) Create(ctx context.Context, document *entity.KnowledgeDocument) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *document
	r.store.documents = append(r.store.documents, &c)
	return nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := r.store.documents[:0]
	for _, d := range r.store.documents {
		if d.Id != id {
			out = append(out, d)
		}
	}
	r.store.documents = out
	return nil
}

func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeDocument, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := parseSpecs(specs)
	for _, d := range r.store.documents {
		if q.id != nil && d.Id != *q.id {
			continue
		}
		c := *d
		return &c, nil
	}
	return nil, nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeDocument, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := parseSpecs(specs)
	return copySlice(paginate(r.store.documents, q)), nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.documents)), nil
}

// --- llm provider ---

type fakeLLMProvider struct {
	mu           sync.Mutex
	answer       string
	err          error
	fragments    []string
	streamErr    error
	stall        bool
	lastMessages []llm.Message
	lastOptions  llm.Options
}

func (p *fakeLLMProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastMessages = history
	p.lastOptions = llm.Options{}
	for _, opt := range options {
		opt(&p.lastOptions)
	}
	if p.err != nil {
		return "", p.err
	}
	return p.answer, nil
}

func (p *fakeLLMProvider) ChatStream(ctx context.Context, history []llm.Message, fragments chan<- string, options ...llm.Option) error {
	defer close(fragments)
	p.mu.Lock()
	p.lastMessages = history
	p.lastOptions = llm.Options{}
	for _, opt := range options {
		opt(&p.lastOptions)
	}
	frags := p.fragments
	streamErr := p.streamErr
	stall := p.stall
	p.mu.Unlock()

	if stall {
		<-ctx.Done()
		return ctx.Err()
	}

	for _, f := range frags {
		select {
		case fragments <- f:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return streamErr
}

// --- publisher ---

type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *fakePublisher) last() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.payloads) == 0 {
		return nil
	}
	return p.payloads[len(p.payloads)-1]
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

// --- logger ---

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
