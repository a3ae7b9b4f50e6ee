package onboarding

import (
	"context"
	"sort"
	"testing"

	"duet-bot/internal/domain"
	"duet-bot/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memProfileRepo struct {
	profiles map[int64]*domain.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[int64]*domain.Profile)}
}

func (r *memProfileRepo) GetByID(_ context.Context, id int64) (*domain.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (r *memProfileRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.profiles[id]
	return ok, nil
}

func (r *memProfileRepo) Count(_ context.Context) (int, error) {
	return len(r.profiles), nil
}

func (r *memProfileRepo) GetRandomUnliked(_ context.Context, viewerID int64) (*domain.Profile, error) {
	var ids []int64
	for id := range r.profiles {
		if id != viewerID {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, domain.ErrProfileNotFound
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return r.profiles[ids[0]], nil
}

func (r *memProfileRepo) Upsert(_ context.Context, p *domain.Profile) error {
	r.profiles[p.ID] = p
	return nil
}

func completeDraft() *session.Draft {
	return &session.Draft{
		Name:        "Игорь",
		Faculty:     "Струнные",
		Course:      3,
		Education:   domain.EducationCollege,
		Description: "Играю на альте",
		Link:        "https://t.me/igor",
	}
}

func TestParseCourse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "plain number", input: "3", want: 3},
		{name: "padded number", input: " 2 ", want: 2},
		{name: "text", input: "третий", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "float", input: "2.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCourse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidCourse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommitStoresAllFields(t *testing.T) {
	repo := newMemProfileRepo()
	uc := NewUseCase(repo, nil)

	profile, err := uc.Commit(context.Background(), 10, "@igor", completeDraft())
	require.NoError(t, err)

	assert.Equal(t, int64(10), profile.ID)
	assert.Equal(t, "@igor", profile.Username)
	assert.Equal(t, "Игорь", profile.Name)
	assert.Equal(t, "Струнные", profile.Faculty)
	assert.Equal(t, 3, profile.Course)
	assert.Equal(t, domain.EducationCollege, profile.Education)
	assert.Equal(t, "Играю на альте", profile.Description)
	assert.Equal(t, "https://t.me/igor", profile.Link)
}

func TestCommitTwiceOverwritesInPlace(t *testing.T) {
	repo := newMemProfileRepo()
	uc := NewUseCase(repo, nil)
	ctx := context.Background()

	_, err := uc.Commit(ctx, 10, "@igor", completeDraft())
	require.NoError(t, err)

	second := completeDraft()
	second.Name = "Игорь Второй"
	second.Faculty = "Духовые"
	second.Course = 4
	second.Education = domain.EducationConservatory
	second.Description = "Теперь труба"
	second.Link = "https://t.me/igor2"

	profile, err := uc.Commit(ctx, 10, "@igor", second)
	require.NoError(t, err)

	assert.Len(t, repo.profiles, 1)
	assert.Equal(t, "Игорь Второй", profile.Name)
	assert.Equal(t, "Духовые", profile.Faculty)
	assert.Equal(t, 4, profile.Course)
	assert.Equal(t, domain.EducationConservatory, profile.Education)
	assert.Equal(t, "Теперь труба", profile.Description)
	assert.Equal(t, "https://t.me/igor2", profile.Link)
}

func TestCommitRejectsIncompleteDraft(t *testing.T) {
	repo := newMemProfileRepo()
	uc := NewUseCase(repo, nil)

	draft := completeDraft()
	draft.Faculty = ""

	_, err := uc.Commit(context.Background(), 10, "@igor", draft)
	require.Error(t, err)
	assert.Empty(t, repo.profiles, "a failed commit must not touch the store")
}

func TestHasProfile(t *testing.T) {
	repo := newMemProfileRepo()
	uc := NewUseCase(repo, nil)
	ctx := context.Background()

	has, err := uc.HasProfile(ctx, 10)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = uc.Commit(ctx, 10, "@igor", completeDraft())
	require.NoError(t, err)

	has, err = uc.HasProfile(ctx, 10)
	require.NoError(t, err)
	assert.True(t, has)
}
