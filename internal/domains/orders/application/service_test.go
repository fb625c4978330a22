package application

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/go-gin-order-dashboard/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-gin-order-dashboard/internal/shared/errors"
)

type fakeOrderRepo struct {
	orders map[string]*domain.Order
	limit  int
}

func newFakeOrderRepo(orders ...*domain.Order) *fakeOrderRepo {
	f := &fakeOrderRepo{orders: map[string]*domain.Order{}}
	for _, o := range orders {
		f.orders[o.ID] = o.Clone()
	}
	return f
}

func (f *fakeOrderRepo) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	clone := order.Clone()
	if clone.ID == "" {
		clone.ID = "generated"
	}
	f.orders[clone.ID] = clone
	return clone.Clone(), nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	if o, ok := f.orders[id]; ok {
		return o.Clone(), nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeOrderRepo) ListRecent(_ context.Context, limit int) ([]*domain.Order, error) {
	f.limit = limit
	list := make([]*domain.Order, 0, len(f.orders))
	for _, o := range f.orders {
		list = append(list, o.Clone())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

type fakeCatalog struct {
	products map[string]*catalogdomain.Product
	calls    int
	err      error
}

func newFakeCatalog(products ...*catalogdomain.Product) *fakeCatalog {
	f := &fakeCatalog{products: map[string]*catalogdomain.Product{}}
	for _, p := range products {
		f.products[p.ID] = p.Clone()
	}
	return f
}

func (f *fakeCatalog) Save(_ context.Context, p *catalogdomain.Product) (*catalogdomain.Product, error) {
	f.products[p.ID] = p.Clone()
	return p.Clone(), nil
}

func (f *fakeCatalog) FindByIDs(_ context.Context, ids []string) ([]*catalogdomain.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var list []*catalogdomain.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			list = append(list, p.Clone())
		}
	}
	return list, nil
}

func TestGetView_AssemblesStoredOrder(t *testing.T) {
	svc := NewService(newFakeOrderRepo(sampleOrder()), newFakeCatalog(sampleProduct()), nil)

	view, err := svc.GetView(context.Background(), " o1 ")
	require.NoError(t, err)
	require.Equal(t, "o1", view.ID)
	require.Equal(t, "a.jpg", view.LineItems[0].Image.Src)
}

func TestGetView_BlankIDIsValidationError(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), newFakeCatalog(), nil)

	_, err := svc.GetView(context.Background(), "  ")
	require.ErrorIs(t, err, ErrInvalidOrderID)
	require.Equal(t, apierrors.KindValidation, apierrors.KindOf(err))
}

func TestGetView_UnknownOrderIsNotFound(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), newFakeCatalog(), nil)

	_, err := svc.GetView(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
	require.Equal(t, apierrors.KindNotFound, apierrors.KindOf(err))
}

func TestGetView_MissingProductIsIntegrityViolation(t *testing.T) {
	svc := NewService(newFakeOrderRepo(sampleOrder()), newFakeCatalog(), nil)

	_, err := svc.GetView(context.Background(), "o1")
	require.ErrorIs(t, err, ErrMissingProductReference)
}

func TestGetView_CatalogFailureIsUnclassified(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.err = errors.New("connection refused")
	svc := NewService(newFakeOrderRepo(sampleOrder()), catalog, nil)

	_, err := svc.GetView(context.Background(), "o1")
	require.Error(t, err)
	require.Equal(t, apierrors.KindUnclassified, apierrors.KindOf(err))
}

func TestListRecent_UsesWindowAndSingleCatalogLookup(t *testing.T) {
	a := &domain.Order{ID: "0001", LineItems: []domain.LineItem{{ID: "a1", ProductID: "p1"}}}
	b := &domain.Order{ID: "0002", LineItems: []domain.LineItem{{ID: "b1", ProductID: "p1"}, {ID: "b2", ProductID: "p2"}}}
	repo := newFakeOrderRepo(a, b)
	catalog := newFakeCatalog(&catalogdomain.Product{ID: "p1"}, &catalogdomain.Product{ID: "p2"})
	svc := NewService(repo, catalog, nil)

	views, err := svc.ListRecent(context.Background())
	require.NoError(t, err)
	require.Equal(t, RecentOrdersLimit, repo.limit)
	require.Equal(t, 1, catalog.calls)
	require.Len(t, views, 2)
	require.Equal(t, "0002", views[0].ID)
	require.Equal(t, "0001", views[1].ID)
}

func TestListRecent_EmptyStoreSkipsCatalog(t *testing.T) {
	catalog := newFakeCatalog()
	svc := NewService(newFakeOrderRepo(), catalog, nil)

	views, err := svc.ListRecent(context.Background())
	require.NoError(t, err)
	require.Empty(t, views)
	require.Zero(t, catalog.calls)
}

type recordingBroadcaster struct {
	views []*types.OrderView
	err   error
}

func (r *recordingBroadcaster) PublishOrderView(_ context.Context, view *types.OrderView) error {
	r.views = append(r.views, view)
	return r.err
}

func TestNotifier_BroadcastsAssembledView(t *testing.T) {
	svc := NewService(newFakeOrderRepo(sampleOrder()), newFakeCatalog(sampleProduct()), nil)
	broadcaster := &recordingBroadcaster{}

	view, err := NewNotifier(svc, broadcaster, nil).OrderChanged(context.Background(), "o1")
	require.NoError(t, err)
	require.Len(t, broadcaster.views, 1)
	require.Same(t, view, broadcaster.views[0])
}

func TestNotifier_DoesNotBroadcastOnFailure(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), newFakeCatalog(), nil)
	broadcaster := &recordingBroadcaster{}

	_, err := NewNotifier(svc, broadcaster, nil).OrderChanged(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
	require.Empty(t, broadcaster.views)
}

func TestNotifier_PublishFailureIsNotReturned(t *testing.T) {
	svc := NewService(newFakeOrderRepo(sampleOrder()), newFakeCatalog(sampleProduct()), nil)
	broadcaster := &recordingBroadcaster{err: errors.New("redis down")}

	view, err := NewNotifier(svc, broadcaster, nil).OrderChanged(context.Background(), "o1")
	require.NoError(t, err)
	require.NotNil(t, view)
}
