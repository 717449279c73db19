package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"sashambhu/internal/auth"
	"sashambhu/internal/domain/bookings"
	"sashambhu/internal/domain/prices"
	"sashambhu/internal/domain/storage"
	"sashambhu/internal/domain/users"
	"sashambhu/internal/nepcal"
	"sashambhu/internal/pricing"
	"sashambhu/internal/ratelimiter"
	"sashambhu/internal/token"

	"github.com/9ssi7/exponent"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var ktm = time.FixedZone("Asia/Kathmandu", 5*3600+45*60)

// fixedNow is a Sunday morning in Kathmandu.
var fixedNow = time.Date(2025, 6, 1, 10, 0, 0, 0, ktm)

const (
	adminEmail   = "owner@sashambhu.test"
	counterEmail = "desk@sashambhu.test"
)

type memBookings struct {
	mu     sync.Mutex
	rows   []bookings.Booking
	nextID int64
	refs   *bookings.ReferenceCodec
	now    func() time.Time
	err    error
}

func (m *memBookings) Create(_ context.Context, b *bookings.Booking) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}

	if b.ClientRef == uuid.Nil {
		b.ClientRef = uuid.New()
	}
	for _, row := range m.rows {
		if row.ClientRef == b.ClientRef {
			*b = row
			return false, nil
		}
	}

	if b.TokenNumber == "" {
		tokens := make([]string, 0, len(m.rows))
		for _, row := range m.rows {
			tokens = append(tokens, row.TokenNumber)
		}
		b.TokenNumber = token.Allocate(tokens)
	}
	for _, row := range m.rows {
		if row.TokenNumber == b.TokenNumber {
			return false, bookings.ErrDuplicateToken
		}
	}

	m.nextID++
	b.ID = m.nextID
	b.CreatedAt = m.now()
	if m.refs != nil {
		b.Reference = m.refs.Encode(b.ID)
	}
	m.rows = append(m.rows, *b)
	return true, nil
}

func (m *memBookings) GetByID(_ context.Context, id int64) (*bookings.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.ID == id {
			b := row
			return &b, nil
		}
	}
	return nil, bookings.ErrNotFound
}

func (m *memBookings) List(context.Context) ([]bookings.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := append([]bookings.Booking{}, m.rows...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memBookings) ListByDate(ctx context.Context, date string) ([]bookings.Booking, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	return bookings.DeriveView(all, bookings.ViewFilter{Date: date}), nil
}

func (m *memBookings) ListTokens(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, row := range m.rows {
		out = append(out, row.TokenNumber)
	}
	return out, nil
}

func (m *memBookings) SearchHistory(_ context.Context, term string) ([]bookings.CustomerVisit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []bookings.CustomerVisit{}
	for _, row := range m.rows {
		if row.Name == term || row.PhoneNumber == term {
			out = append(out, bookings.CustomerVisit{
				ID: row.ID, Name: row.Name, PhoneNumber: row.PhoneNumber, Gender: row.Gender,
				NumberOfPersons: row.NumberOfPersons, DateEnglish: row.DateEnglish, Status: row.Status,
				GameType: row.GameType, PlayzonePackage: row.PlayzonePackage,
				SkateparkBasePackage: row.SkateparkBasePackage, SkateparkExtraHours: row.SkateparkExtraHours,
			})
		}
	}
	return out, nil
}

func (m *memBookings) Advance(_ context.Context, id int64, status bookings.Status, at time.Time) (*bookings.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID != id {
			continue
		}
		b := m.rows[i]
		if err := b.Advance(status, at); err != nil {
			return nil, err
		}
		m.rows[i] = b
		return &b, nil
	}
	return nil, bookings.ErrNotFound
}

func (m *memBookings) ConfirmAllPending(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for i := range m.rows {
		if m.rows[i].Status == bookings.StatusPending {
			m.rows[i].Status = bookings.StatusConfirmed
			n++
		}
	}
	return n, nil
}

func (m *memBookings) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, row := range m.rows {
		if row.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return bookings.ErrNotFound
}

type memPrices struct {
	settings *prices.Settings
	err      error
}

func (m *memPrices) Current(context.Context) (*prices.Settings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.settings == nil {
		return &prices.Settings{PriceTable: pricing.DefaultTable()}, nil
	}
	s := *m.settings
	return &s, nil
}

func (m *memPrices) Save(_ context.Context, t pricing.PriceTable, by int64) (*prices.Settings, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	at := time.Now()
	m.settings = &prices.Settings{PriceTable: t, UpdatedBy: &by, UpdatedAt: &at}
	return m.settings, nil
}

type memUsers struct {
	mu     sync.Mutex
	rows   map[int64]*users.User
	nextID int64
}

func newMemUsers(list ...users.User) *memUsers {
	m := &memUsers{rows: make(map[int64]*users.User)}
	for _, u := range list {
		u := u
		m.nextID++
		u.ID = m.nextID
		m.rows[u.ID] = &u
	}
	return m
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.rows[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, users.ErrNotFound
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if strings.EqualFold(u.Email, email) {
			c := *u
			return &c, nil
		}
	}
	return nil, users.ErrNotFound
}

func (m *memUsers) List(context.Context) ([]users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []users.User{}
	for _, u := range m.rows {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memUsers) ListIDs(context.Context) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []int64
	for id := range m.rows {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *memUsers) Create(ctx context.Context, u *users.User) error {
	if _, err := m.GetByEmail(ctx, u.Email); err == nil {
		return users.ErrDuplicateEmail
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	u.ID = m.nextID
	c := *u
	m.rows[u.ID] = &c
	return nil
}

func (m *memUsers) Update(_ context.Context, id int64, upd users.Update) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	c := *u
	return &c, nil
}

func (m *memUsers) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return users.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type memPushTokens struct {
	mu     sync.Mutex
	tokens map[int64][]string
}

func (m *memPushTokens) Register(_ context.Context, userID int64, t string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokens == nil {
		m.tokens = make(map[int64][]string)
	}
	m.tokens[userID] = append(m.tokens[userID], t)
	return nil
}

func (m *memPushTokens) Unregister(_ context.Context, userID int64, t string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.tokens[userID][:0]
	for _, v := range m.tokens[userID] {
		if v != t {
			kept = append(kept, v)
		}
	}
	m.tokens[userID] = kept
	return nil
}

func (m *memPushTokens) DeleteUserTokens(_ context.Context, userID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.tokens[userID]))
	delete(m.tokens, userID)
	return n, nil
}

func (m *memPushTokens) PruneStale(context.Context, time.Duration) (int64, error) { return 0, nil }

func (m *memPushTokens) TokensByUser(_ context.Context, ids []int64) (map[int64][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[int64][]string)
	for _, id := range ids {
		if v := m.tokens[id]; len(v) > 0 {
			out[id] = append([]string{}, v...)
		}
	}
	return out, nil
}

type recordingPush struct {
	mu   sync.Mutex
	msgs []*exponent.Message
}

func (p *recordingPush) Publish(_ context.Context, msgs []*exponent.Message) ([]*exponent.MessageResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msgs...)
	return nil, nil
}

func (p *recordingPush) PublishSingle(ctx context.Context, msg *exponent.Message) ([]*exponent.MessageResponse, error) {
	return p.Publish(ctx, []*exponent.Message{msg})
}

type testEnv struct {
	app        *application
	bookings   *memBookings
	prices     *memPrices
	users      *memUsers
	pushTokens *memPushTokens
	jwt        *auth.JWTAuthenticator
	mux        http.Handler
}

func newTestApplication(t *testing.T) *testEnv {
	t.Helper()

	refs, err := bookings.NewReferenceCodec("test-salt")
	require.NoError(t, err)

	now := func() time.Time { return fixedNow }
	env := &testEnv{
		bookings:   &memBookings{refs: refs, now: now},
		prices:     &memPrices{},
		users:      newMemUsers(users.User{Email: adminEmail, Name: "Owner", Role: users.RoleAdmin}, users.User{Email: counterEmail, Name: "Desk", Role: users.RoleCounter}),
		pushTokens: &memPushTokens{},
		jwt:        auth.NewJWTAuthenticator("test-secret", "sashambhu", "idp"),
	}

	cfg := config{
		env: "test",
		auth: authConfig{
			basic: basicConfig{user: "ops", pass: "secret"},
		},
		rateLimiter: ratelimiter.Config{RequestsPerTimeFrame: 1000, TimeFrame: time.Second, Enabled: false},
	}

	env.app = &application{
		config: cfg,
		logger: zap.NewNop().Sugar(),
		store: &storage.Container{
			Bookings:   env.bookings,
			Prices:     env.prices,
			Users:      env.users,
			PushTokens: env.pushTokens,
		},
		authenticator: env.jwt,
		rateLimiter:   ratelimiter.NewFixedWindowLimiter(cfg.rateLimiter.RequestsPerTimeFrame, cfg.rateLimiter.TimeFrame),
		refs:          refs,
		calendar:      nepcal.NewConverter(nil),
		location:      ktm,
		now:           now,
	}
	env.mux = env.app.mount()
	return env
}

func (e *testEnv) token(t *testing.T, email string) string {
	t.Helper()
	tok, err := e.jwt.GenerateToken(email, time.Hour)
	require.NoError(t, err)
	return tok
}

// do sends a request as the staff member with email; an empty email sends
// no Authorization header.
func (e *testEnv) do(t *testing.T, method, path, email string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if email != "" {
		req.Header.Set("Authorization", "Bearer "+e.token(t, email))
	}

	rr := httptest.NewRecorder()
	e.mux.ServeHTTP(rr, req)
	return rr
}

// decodeData unwraps the {"data": ...} envelope into v.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, v))
}
