package crud_test

import (
	"context"
	"sort"
	"strconv"
	"testing"

	"shopsample/pkg/crud"
	"shopsample/pkg/logger"

	"github.com/stretchr/testify/require"
)

type widget struct {
	key   string
	label string
}

func (w *widget) Identifier() (string, bool) {
	if w == nil || w.key == "" {
		return "", false
	}
	return w.key, true
}

func (w *widget) SetIdentifier(id string) { w.key = id }

type widgetDto struct {
	Key   string
	Label string
}

func (d *widgetDto) Identifier() (string, bool) {
	if d == nil || d.Key == "" {
		return "", false
	}
	return d.Key, true
}

func (d *widgetDto) SetIdentifier(id string) { d.Key = id }

type widgetMapper struct{}

func (widgetMapper) ToDto(w *widget) *widgetDto {
	if w == nil {
		return nil
	}
	return &widgetDto{Key: w.key, Label: w.label}
}

func (widgetMapper) ToEntity(d *widgetDto) *widget {
	if d == nil {
		return nil
	}
	return &widget{key: d.Key, label: d.Label}
}

func (widgetMapper) MergeInto(d *widgetDto, w *widget) {
	if d == nil || w == nil {
		return
	}
	w.label = d.Label
}

// memoryRepository keeps widgets keyed by a generated string id.
type memoryRepository struct {
	rows    map[string]*widget
	next    int
	deletes int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{rows: make(map[string]*widget)}
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (crud.Optional[*widget], error) {
	w, ok := r.rows[id]
	if !ok {
		return crud.NotFound[*widget](), nil
	}
	return crud.Found(w), nil
}

func (r *memoryRepository) FindAll(context.Context) ([]*widget, error) {
	keys := make([]string, 0, len(r.rows))
	for k := range r.rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]*widget, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.rows[k])
	}
	return out, nil
}

func (r *memoryRepository) FindAllPaged(ctx context.Context, page, size int) ([]*widget, int, error) {
	all, _ := r.FindAll(ctx)
	start := min(page*size, len(all))
	end := min(start+size, len(all))
	return all[start:end], len(all), nil
}

func (r *memoryRepository) Save(_ context.Context, w *widget) (*widget, error) {
	if _, ok := w.Identifier(); !ok {
		r.next++
		w.SetIdentifier("w" + strconv.Itoa(r.next))
	}
	r.rows[w.key] = w
	return w, nil
}

func (r *memoryRepository) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}

func (r *memoryRepository) DeleteByID(_ context.Context, id string) error {
	r.deletes++
	if _, ok := r.rows[id]; !ok {
		return crud.ErrDoesNotExist
	}
	delete(r.rows, id)
	return nil
}

func newWidgetService(repo *memoryRepository) *crud.Service[string, widget, widgetDto, *widget, *widgetDto] {
	return crud.NewService[string, widget, widgetDto, *widget, *widgetDto](repo, widgetMapper{}, logger.NewNop())
}

func TestService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	svc := newWidgetService(repo)

	created, err := svc.Create(ctx, &widgetDto{Label: "first"})
	require.NoError(t, err)
	dto, ok := created.Get()
	require.True(t, ok)
	require.Equal(t, "w1", dto.Key)

	got, err := svc.GetByID(ctx, dto.Key)
	require.NoError(t, err)
	fetched, _ := got.Get()
	require.Equal(t, "first", fetched.Label)

	updated, err := svc.Update(ctx, &widgetDto{Key: dto.Key, Label: "renamed"})
	require.NoError(t, err)
	require.True(t, updated.IsFound())
	require.Equal(t, "renamed", repo.rows[dto.Key].label)

	require.NoError(t, svc.Delete(ctx, dto.Key))
	require.ErrorIs(t, svc.Delete(ctx, dto.Key), crud.ErrDoesNotExist)
	require.Equal(t, 1, repo.deletes)

	got, err = svc.GetByID(ctx, dto.Key)
	require.NoError(t, err)
	require.False(t, got.IsFound())
}

func TestService_UpdateNeverCreates(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	svc := newWidgetService(repo)

	for _, dto := range []*widgetDto{nil, {Label: "no key"}, {Key: "ghost", Label: "unknown"}} {
		result, err := svc.Update(ctx, dto)
		require.NoError(t, err)
		require.False(t, result.IsFound())
	}
	require.Empty(t, repo.rows)
}

func TestService_FindAllWithPaging(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	svc := newWidgetService(repo)

	for i := range 5 {
		_, err := svc.Create(ctx, &widgetDto{Label: strconv.Itoa(i)})
		require.NoError(t, err)
	}

	page, err := svc.FindAllWithPaging(ctx, 3, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, 3, page.TotalPages)
	require.True(t, page.HasPrevious)
	require.False(t, page.HasNext)

	page, err = svc.FindAllWithPaging(ctx, 4, 2)
	require.NoError(t, err)
	require.Empty(t, page.Items)
	require.Equal(t, 5, page.TotalCount)
	require.False(t, page.HasNext)

	_, err = svc.FindAllWithPaging(ctx, 0, 2)
	require.ErrorIs(t, err, crud.ErrInvalidPageRequest)
}
