package match

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"duet-bot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory implementation of both store contracts. Random
// draws cycle over the eligible ids in order, so tests stay deterministic.
type memRepo struct {
	profiles map[int64]*domain.Profile
	likes    map[[2]int64]struct{}
	draws    int
}

func newMemRepo(profiles ...*domain.Profile) *memRepo {
	r := &memRepo{
		profiles: make(map[int64]*domain.Profile),
		likes:    make(map[[2]int64]struct{}),
	}
	for _, p := range profiles {
		r.profiles[p.ID] = p
	}
	return r
}

func (r *memRepo) GetByID(_ context.Context, id int64) (*domain.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (r *memRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.profiles[id]
	return ok, nil
}

func (r *memRepo) Count(_ context.Context) (int, error) {
	return len(r.profiles), nil
}

func (r *memRepo) GetRandomUnliked(_ context.Context, viewerID int64) (*domain.Profile, error) {
	var ids []int64
	for id := range r.profiles {
		if id == viewerID {
			continue
		}
		if _, liked := r.likes[[2]int64{viewerID, id}]; liked {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, domain.ErrProfileNotFound
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	r.draws++
	return r.profiles[ids[r.draws%len(ids)]], nil
}

func (r *memRepo) Upsert(_ context.Context, p *domain.Profile) error {
	r.profiles[p.ID] = p
	return nil
}

func (r *memRepo) Add(_ context.Context, likerID, likedID int64) error {
	r.likes[[2]int64{likerID, likedID}] = struct{}{}
	return nil
}

func (r *memRepo) Remove(_ context.Context, likerID, likedID int64) error {
	delete(r.likes, [2]int64{likerID, likedID})
	return nil
}

func (r *memRepo) Has(_ context.Context, likerID, likedID int64) (bool, error) {
	_, ok := r.likes[[2]int64{likerID, likedID}]
	return ok, nil
}

func (r *memRepo) GivenBy(_ context.Context, likerID int64) ([]*domain.Profile, error) {
	return r.edgeEnds(likerID, true), nil
}

func (r *memRepo) ReceivedBy(_ context.Context, likedID int64) ([]*domain.Profile, error) {
	return r.edgeEnds(likedID, false), nil
}

func (r *memRepo) edgeEnds(id int64, given bool) []*domain.Profile {
	var ids []int64
	for edge := range r.likes {
		switch {
		case given && edge[0] == id:
			ids = append(ids, edge[1])
		case !given && edge[1] == id:
			ids = append(ids, edge[0])
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	profiles := make([]*domain.Profile, 0, len(ids))
	for _, other := range ids {
		profiles = append(profiles, r.profiles[other])
	}
	return profiles
}

func (r *memRepo) CountGivenBy(_ context.Context, likerID int64) (int, error) {
	count := 0
	for edge := range r.likes {
		if edge[0] == likerID {
			count++
		}
	}
	return count, nil
}

type recordedLike struct {
	chatID int64
	card   string
}

type recordedMatch struct {
	chatID     int64
	card       string
	contact    string
	icebreaker string
}

type fakeNotifier struct {
	likes   []recordedLike
	matches []recordedMatch
}

func (n *fakeNotifier) NotifyLiked(_ context.Context, chatID int64, likerCard string) error {
	n.likes = append(n.likes, recordedLike{chatID: chatID, card: likerCard})
	return nil
}

func (n *fakeNotifier) NotifyMatch(_ context.Context, chatID int64, card, contact, icebreaker string) error {
	n.matches = append(n.matches, recordedMatch{chatID: chatID, card: card, contact: contact, icebreaker: icebreaker})
	return nil
}

type fakeIcebreakers struct {
	line string
	err  error
}

func (f *fakeIcebreakers) GenerateIcebreaker(_ context.Context, _, _ string) (string, error) {
	return f.line, f.err
}

func testProfile(id int64, name string) *domain.Profile {
	return &domain.Profile{
		ID:          id,
		Username:    fmt.Sprintf("@user%d", id),
		Name:        name,
		Faculty:     "Фортепиано",
		Course:      2,
		Education:   domain.EducationMusicSchool,
		Description: "о себе",
		Link:        fmt.Sprintf("https://t.me/user%d", id),
	}
}

func newTestUseCase(repo *memRepo, notifier *fakeNotifier, ice IcebreakerSource) *UseCase {
	return NewUseCase(repo, repo, notifier, ice, nil)
}

func TestMutualLikeYieldsMatchOnce(t *testing.T) {
	ctx := context.Background()
	a := testProfile(1, "A")
	b := testProfile(2, "B")
	repo := newMemRepo(a, b)
	notifier := &fakeNotifier{}
	uc := newTestUseCase(repo, notifier, nil)

	// A likes B first: one-sided.
	result, err := uc.Like(ctx, a, b.ID)
	require.NoError(t, err)
	assert.False(t, result.IsMatch)

	// B reciprocates: a match.
	result, err = uc.Like(ctx, b, a.ID)
	require.NoError(t, err)
	assert.True(t, result.IsMatch)
	assert.Equal(t, a.ID, result.Candidate.ID)

	// Exactly one like notification (to B) and one match notification (to A).
	require.Len(t, notifier.likes, 1)
	assert.Equal(t, b.ID, notifier.likes[0].chatID)
	require.Len(t, notifier.matches, 1)
	assert.Equal(t, a.ID, notifier.matches[0].chatID)
	assert.Equal(t, b.Username, notifier.matches[0].contact)

	// Both directed edges exist; nothing was retracted.
	hasAB, _ := repo.Has(ctx, a.ID, b.ID)
	hasBA, _ := repo.Has(ctx, b.ID, a.ID)
	assert.True(t, hasAB)
	assert.True(t, hasBA)
}

func TestRepeatedLikeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	a := testProfile(1, "A")
	b := testProfile(2, "B")
	repo := newMemRepo(a, b)
	notifier := &fakeNotifier{}
	uc := newTestUseCase(repo, notifier, nil)

	_, err := uc.Like(ctx, a, b.ID)
	require.NoError(t, err)
	edgesAfterFirst := len(repo.likes)

	result, err := uc.Like(ctx, a, b.ID)
	require.NoError(t, err)
	assert.True(t, result.Duplicate)
	assert.False(t, result.IsMatch)
	assert.Equal(t, edgesAfterFirst, len(repo.likes))
	assert.Len(t, notifier.likes, 1, "duplicate like must not notify again")
}

func TestOneSidedLikeDoesNotRevealIdentity(t *testing.T) {
	ctx := context.Background()
	a := testProfile(1, "A")
	b := testProfile(2, "B")
	repo := newMemRepo(a, b)
	notifier := &fakeNotifier{}
	uc := newTestUseCase(repo, notifier, nil)

	_, err := uc.Like(ctx, a, b.ID)
	require.NoError(t, err)

	require.Len(t, notifier.likes, 1)
	assert.NotContains(t, notifier.likes[0].card, a.Username)

	given, _ := repo.GivenBy(ctx, a.ID)
	require.Len(t, given, 1)
	assert.Equal(t, b.ID, given[0].ID)
}

func TestLikeSelfRejected(t *testing.T) {
	a := testProfile(1, "A")
	uc := newTestUseCase(newMemRepo(a), &fakeNotifier{}, nil)

	_, err := uc.Like(context.Background(), a, a.ID)
	assert.ErrorIs(t, err, domain.ErrCannotLikeSelf)
}

func TestDislikeWritesNothing(t *testing.T) {
	ctx := context.Background()
	a := testProfile(1, "A")
	b := testProfile(2, "B")
	repo := newMemRepo(a, b)
	uc := newTestUseCase(repo, &fakeNotifier{}, nil)

	require.NoError(t, uc.Dislike(ctx, a.ID, b.ID))
	assert.Empty(t, repo.likes)

	// An earlier one-sided like is kept, not retracted.
	_, err := uc.Like(ctx, a, b.ID)
	require.NoError(t, err)
	require.NoError(t, uc.Dislike(ctx, a.ID, b.ID))
	has, _ := repo.Has(ctx, a.ID, b.ID)
	assert.True(t, has)
}

func TestNextCandidateNeverReturnsViewer(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo(
		testProfile(1, "A"), testProfile(2, "B"),
		testProfile(3, "C"), testProfile(4, "D"),
	)
	uc := newTestUseCase(repo, &fakeNotifier{}, nil)

	for i := 0; i < 25; i++ {
		candidate, err := uc.NextCandidate(ctx, 1)
		require.NoError(t, err)
		assert.NotEqual(t, int64(1), candidate.ID)
	}
}

func TestNextCandidateNoCandidates(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(newMemRepo(testProfile(1, "A")), &fakeNotifier{}, nil)

	_, err := uc.NextCandidate(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNoCandidates)

	uc = newTestUseCase(newMemRepo(), &fakeNotifier{}, nil)
	_, err = uc.NextCandidate(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNoCandidates)
}

func TestNextCandidateExhaustion(t *testing.T) {
	ctx := context.Background()
	a := testProfile(1, "A")
	b := testProfile(2, "B")
	c := testProfile(3, "C")
	repo := newMemRepo(a, b, c)
	uc := newTestUseCase(repo, &fakeNotifier{}, nil)

	// One of two others liked: not exhausted yet, and the remaining
	// candidate is the one not yet liked.
	require.NoError(t, repo.Add(ctx, a.ID, b.ID))
	candidate, err := uc.NextCandidate(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, candidate.ID)

	// Both others liked: exhausted without further draws.
	require.NoError(t, repo.Add(ctx, a.ID, c.ID))
	_, err = uc.NextCandidate(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrFeedExhausted)
}

func TestNextCandidateAlwaysFindsRemainingUnliked(t *testing.T) {
	ctx := context.Background()
	a := testProfile(1, "A")
	b := testProfile(2, "B")
	c := testProfile(3, "C")
	repo := newMemRepo(a, b, c)
	uc := newTestUseCase(repo, &fakeNotifier{}, nil)

	// With one of two others liked, every selection must surface the
	// unseen candidate; it must never report exhaustion early.
	require.NoError(t, repo.Add(ctx, a.ID, b.ID))
	for i := 0; i < 10; i++ {
		candidate, err := uc.NextCandidate(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, c.ID, candidate.ID)
	}
}

func TestResumePendingPrefersReceivedLike(t *testing.T) {
	ctx := context.Background()
	a := testProfile(1, "A")
	b := testProfile(2, "B")
	c := testProfile(3, "C")
	repo := newMemRepo(a, b, c)
	uc := newTestUseCase(repo, &fakeNotifier{}, nil)

	// C liked A: resuming shows C, not a random draw.
	require.NoError(t, repo.Add(ctx, c.ID, a.ID))
	candidate, err := uc.ResumePending(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, candidate.ID)

	// Once answered, resume falls back to normal selection.
	require.NoError(t, repo.Add(ctx, a.ID, c.ID))
	candidate, err = uc.ResumePending(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, candidate.ID)
}

func TestMatchIcebreaker(t *testing.T) {
	ctx := context.Background()
	a := testProfile(1, "A")
	b := testProfile(2, "B")

	repo := newMemRepo(a, b)
	notifier := &fakeNotifier{}
	uc := newTestUseCase(repo, notifier, &fakeIcebreakers{line: "Привет, какой твой любимый аккорд?"})

	require.NoError(t, repo.Add(ctx, b.ID, a.ID))
	result, err := uc.Like(ctx, a, b.ID)
	require.NoError(t, err)
	require.True(t, result.IsMatch)
	assert.Equal(t, "Привет, какой твой любимый аккорд?", result.Icebreaker)
	require.Len(t, notifier.matches, 1)
	assert.Equal(t, result.Icebreaker, notifier.matches[0].icebreaker)
}

func TestMatchIcebreakerFailureIsIgnored(t *testing.T) {
	ctx := context.Background()
	a := testProfile(1, "A")
	b := testProfile(2, "B")

	repo := newMemRepo(a, b)
	uc := newTestUseCase(repo, &fakeNotifier{}, &fakeIcebreakers{err: errors.New("quota exceeded")})

	require.NoError(t, repo.Add(ctx, b.ID, a.ID))
	result, err := uc.Like(ctx, a, b.ID)
	require.NoError(t, err)
	assert.True(t, result.IsMatch)
	assert.Empty(t, result.Icebreaker)
}

func TestLikedCardMatchesRender(t *testing.T) {
	ctx := context.Background()
	a := testProfile(1, "A")
	b := testProfile(2, "B")
	repo := newMemRepo(a, b)
	notifier := &fakeNotifier{}
	uc := newTestUseCase(repo, notifier, nil)

	_, err := uc.Like(ctx, a, b.ID)
	require.NoError(t, err)

	require.Len(t, notifier.likes, 1)
	assert.Equal(t, a.Render(), notifier.likes[0].card)
	assert.True(t, strings.HasPrefix(notifier.likes[0].card, a.Name))
}
