package hiring

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giglance/giglance_be/internal/models"
)

// -------- test fakes --------

type fakeGigStore struct {
	mu   sync.Mutex
	gigs map[uuid.UUID]*models.Gig
}

func newFakeGigStore() *fakeGigStore {
	return &fakeGigStore{gigs: make(map[uuid.UUID]*models.Gig)}
}

func (f *fakeGigStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.gigs[id]
	if !ok {
		return nil, ErrGigNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGigStore) AssignIfOpen(ctx context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.gigs[id]
	if !ok || g.Status != models.GigStatusOpen {
		return false, nil
	}
	g.Status = models.GigStatusAssigned
	return true, nil
}

func (f *fakeGigStore) status(id uuid.UUID) models.GigStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gigs[id].Status
}

type fakeBidStore struct {
	mu   sync.Mutex
	bids map[uuid.UUID]*models.Bid
}

func newFakeBidStore() *fakeBidStore {
	return &fakeBidStore{bids: make(map[uuid.UUID]*models.Bid)}
}

func (f *fakeBidStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bids[id]
	if !ok {
		return nil, ErrBidNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBidStore) Create(ctx context.Context, bid *models.Bid) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if bid.ID == uuid.Nil {
		bid.ID = uuid.New()
	}
	cp := *bid
	f.bids[bid.ID] = &cp
	return nil
}

func (f *fakeBidStore) MarkHired(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.bids[id]; ok {
		b.Status = models.BidStatusHired
	}
	return nil
}

func (f *fakeBidStore) RejectSiblings(ctx context.Context, gigID, exceptBidID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bids {
		if b.GigID == gigID && b.ID != exceptBidID && b.Status == models.BidStatusPending {
			b.Status = models.BidStatusRejected
		}
	}
	return nil
}

func (f *fakeBidStore) status(id uuid.UUID) models.BidStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bids[id].Status
}

func (f *fakeBidStore) countByStatus(gigID uuid.UUID, status models.BidStatus) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.bids {
		if b.GigID == gigID && b.Status == status {
			n++
		}
	}
	return n
}

type fakeTxManager struct {
	stores Stores
}

func (f *fakeTxManager) InTx(ctx context.Context, fn func(Stores) error) error {
	return fn(f.stores)
}

type pushedEvent struct {
	userID uuid.UUID
	event  string
	data   interface{}
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []pushedEvent
}

func (f *fakeNotifier) Push(userID uuid.UUID, event string, data interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, pushedEvent{userID: userID, event: event, data: data})
}

func (f *fakeNotifier) all() []pushedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]pushedEvent, len(f.events))
	copy(out, f.events)
	return out
}

// -------- helpers --------

type fixture struct {
	svc      *Service
	gigs     *fakeGigStore
	bids     *fakeBidStore
	notifier *fakeNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gigs := newFakeGigStore()
	bids := newFakeBidStore()
	notifier := &fakeNotifier{}
	stores := Stores{Gigs: gigs, Bids: bids}
	svc := NewService(stores, &fakeTxManager{stores: stores}, notifier)
	return &fixture{svc: svc, gigs: gigs, bids: bids, notifier: notifier}
}

func (fx *fixture) addGig(owner uuid.UUID, title string, status models.GigStatus) *models.Gig {
	g := &models.Gig{
		ID:          uuid.New(),
		OwnerID:     owner,
		Title:       title,
		Description: "desc",
		Budget:      100,
		Status:      status,
	}
	fx.gigs.gigs[g.ID] = g
	return g
}

func (fx *fixture) addBid(gigID, freelancer uuid.UUID, status models.BidStatus) *models.Bid {
	b := &models.Bid{
		ID:           uuid.New(),
		GigID:        gigID,
		FreelancerID: freelancer,
		Message:      "pick me",
		Price:        50,
		Status:       status,
	}
	fx.bids.bids[b.ID] = b
	return b
}

// -------- hire tests --------

func TestHire_Success(t *testing.T) {
	fx := newFixture(t)
	owner := uuid.New()
	u2 := uuid.New()
	u3 := uuid.New()

	gig := fx.addGig(owner, "Design a logo", models.GigStatusOpen)
	b1 := fx.addBid(gig.ID, u2, models.BidStatusPending)
	b2 := fx.addBid(gig.ID, u3, models.BidStatusPending)
	b3 := fx.addBid(gig.ID, u3, models.BidStatusRejected)

	err := fx.svc.Hire(context.Background(), owner, b1.ID)
	require.NoError(t, err)

	assert.Equal(t, models.GigStatusAssigned, fx.gigs.status(gig.ID))
	assert.Equal(t, models.BidStatusHired, fx.bids.status(b1.ID))
	assert.Equal(t, models.BidStatusRejected, fx.bids.status(b2.ID))
	assert.Equal(t, models.BidStatusRejected, fx.bids.status(b3.ID))
	assert.Equal(t, 0, fx.bids.countByStatus(gig.ID, models.BidStatusPending))

	events := fx.notifier.all()
	require.Len(t, events, 1)
	assert.Equal(t, u2, events[0].userID)
	assert.Equal(t, EventHired, events[0].event)

	payload, ok := events[0].data.(HiredNotification)
	require.True(t, ok)
	assert.Equal(t, `You have been hired for "Design a logo"!`, payload.Message)
	assert.Equal(t, gig.ID.String(), payload.GigID)
}

func TestHire_BidNotFound(t *testing.T) {
	fx := newFixture(t)

	err := fx.svc.Hire(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrBidNotFound)
	assert.Empty(t, fx.notifier.all())
}

func TestHire_GigNotFound(t *testing.T) {
	fx := newFixture(t)
	// bid survives gig deletion: still reported as not found
	b := fx.addBid(uuid.New(), uuid.New(), models.BidStatusPending)

	err := fx.svc.Hire(context.Background(), uuid.New(), b.ID)
	assert.ErrorIs(t, err, ErrGigNotFound)
}

func TestHire_NotOwner(t *testing.T) {
	fx := newFixture(t)
	owner := uuid.New()
	bidder := uuid.New()

	gig := fx.addGig(owner, "Build a website", models.GigStatusOpen)
	b := fx.addBid(gig.ID, bidder, models.BidStatusPending)

	// the bidder themselves tries to hire
	err := fx.svc.Hire(context.Background(), bidder, b.ID)
	assert.ErrorIs(t, err, ErrNotGigOwner)

	assert.Equal(t, models.GigStatusOpen, fx.gigs.status(gig.ID))
	assert.Equal(t, models.BidStatusPending, fx.bids.status(b.ID))
	assert.Empty(t, fx.notifier.all())
}

func TestHire_GigNotOpen(t *testing.T) {
	fx := newFixture(t)
	owner := uuid.New()

	gig := fx.addGig(owner, "Write a blog post", models.GigStatusAssigned)
	b := fx.addBid(gig.ID, uuid.New(), models.BidStatusPending)

	err := fx.svc.Hire(context.Background(), owner, b.ID)
	assert.ErrorIs(t, err, ErrGigNotOpen)
	assert.Empty(t, fx.notifier.all())
}

func TestHire_SecondCallFails(t *testing.T) {
	fx := newFixture(t)
	owner := uuid.New()

	gig := fx.addGig(owner, "Translate a document", models.GigStatusOpen)
	b1 := fx.addBid(gig.ID, uuid.New(), models.BidStatusPending)
	b2 := fx.addBid(gig.ID, uuid.New(), models.BidStatusPending)

	require.NoError(t, fx.svc.Hire(context.Background(), owner, b1.ID))

	err := fx.svc.Hire(context.Background(), owner, b2.ID)
	assert.ErrorIs(t, err, ErrGigNotOpen)

	// no double state change, no double notification
	assert.Equal(t, 1, fx.bids.countByStatus(gig.ID, models.BidStatusHired))
	assert.Equal(t, models.BidStatusRejected, fx.bids.status(b2.ID))
	assert.Len(t, fx.notifier.all(), 1)
}

func TestHire_ConcurrentOnSameGig(t *testing.T) {
	fx := newFixture(t)
	owner := uuid.New()

	gig := fx.addGig(owner, "Fix a bug", models.GigStatusOpen)
	b1 := fx.addBid(gig.ID, uuid.New(), models.BidStatusPending)
	b2 := fx.addBid(gig.ID, uuid.New(), models.BidStatusPending)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, bidID := range []uuid.UUID{b1.ID, b2.ID} {
		wg.Add(1)
		go func(i int, bidID uuid.UUID) {
			defer wg.Done()
			errs[i] = fx.svc.Hire(context.Background(), owner, bidID)
		}(i, bidID)
	}
	wg.Wait()

	// exactly one hire wins, the loser observes the closed gig
	if errs[0] == nil {
		assert.ErrorIs(t, errs[1], ErrGigNotOpen)
	} else {
		assert.ErrorIs(t, errs[0], ErrGigNotOpen)
		assert.NoError(t, errs[1])
	}

	assert.Equal(t, models.GigStatusAssigned, fx.gigs.status(gig.ID))
	assert.Equal(t, 1, fx.bids.countByStatus(gig.ID, models.BidStatusHired))
	assert.Equal(t, 0, fx.bids.countByStatus(gig.ID, models.BidStatusPending))
	assert.Len(t, fx.notifier.all(), 1)
}

// -------- bid submission tests --------

func TestSubmitBid_Success(t *testing.T) {
	fx := newFixture(t)
	owner := uuid.New()
	candidate := uuid.New()
	gig := fx.addGig(owner, "Edit a video", models.GigStatusOpen)

	bid, err := fx.svc.SubmitBid(context.Background(), candidate, gig.ID, "  I can do this  ", 75)
	require.NoError(t, err)

	assert.Equal(t, models.BidStatusPending, bid.Status)
	assert.Equal(t, "I can do this", bid.Message)
	assert.Equal(t, int64(75), bid.Price)
	assert.Equal(t, candidate, bid.FreelancerID)
	assert.Equal(t, models.BidStatusPending, fx.bids.status(bid.ID))
}

func TestSubmitBid_AllowsDuplicates(t *testing.T) {
	fx := newFixture(t)
	candidate := uuid.New()
	gig := fx.addGig(uuid.New(), "Edit a video", models.GigStatusOpen)

	_, err := fx.svc.SubmitBid(context.Background(), candidate, gig.ID, "first", 10)
	require.NoError(t, err)
	_, err = fx.svc.SubmitBid(context.Background(), candidate, gig.ID, "second", 20)
	require.NoError(t, err)

	assert.Equal(t, 2, fx.bids.countByStatus(gig.ID, models.BidStatusPending))
}

func TestSubmitBid_Validation(t *testing.T) {
	fx := newFixture(t)
	owner := uuid.New()
	gig := fx.addGig(owner, "Edit a video", models.GigStatusOpen)
	closed := fx.addGig(owner, "Old gig", models.GigStatusAssigned)

	tests := []struct {
		name    string
		user    uuid.UUID
		gigID   uuid.UUID
		message string
		price   int64
		wantErr error
	}{
		{"empty message", uuid.New(), gig.ID, "   ", 10, ErrEmptyMessage},
		{"zero price", uuid.New(), gig.ID, "hello", 0, ErrInvalidPrice},
		{"negative price", uuid.New(), gig.ID, "hello", -5, ErrInvalidPrice},
		{"gig not found", uuid.New(), uuid.New(), "hello", 10, ErrGigNotFound},
		{"gig not open", uuid.New(), closed.ID, "hello", 10, ErrGigNotOpen},
		{"own gig", owner, gig.ID, "hello", 10, ErrOwnGigBid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.svc.SubmitBid(context.Background(), tt.user, tt.gigID, tt.message, tt.price)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
