package memory

import (
	"context"
	"sync"
	"time"

	"beautyadmin/admin-service/internal/app/admin/entity"
	"beautyadmin/admin-service/internal/app/admin/repository"
	"beautyadmin/pkg/metrics"
)

const (
	serviceName = "admin-service"
	backendName = "memory"
)

// Store - имитация REST API в памяти процесса.
// Все мутации выполняются под одним замком, поэтому id никогда не повторяются,
// а каскадное удаление атомарно для наблюдателей
type Store struct {
	mu       sync.RWMutex
	now      func() time.Time
	latency  time.Duration
	fixtures *Fixtures

	categories     *table[entity.Category]
	brands         *table[entity.Brand]
	products       *table[entity.Product]
	variants       *table[entity.ProductVariant]
	attributes     *table[entity.VariantAttribute]
	productImages  *table[entity.ProductImage]
	reviews        *table[entity.Review]
	reviewImages   *table[entity.ReviewImage]
	coupons        *table[entity.Coupon]
	paymentMethods *table[entity.PaymentMethod]

	tables map[entity.Kind]cascadeTable
}

type Option func(*Store)

// WithLatency добавляет искусственную задержку перед каждой операцией
func WithLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithFixtures заполняет хранилище начальными данными; Reset возвращает к ним же
func WithFixtures(f Fixtures) Option {
	return func(s *Store) { s.fixtures = &f }
}

func NewStore(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.init()
	s.seed()
	return s
}

// Reset сбрасывает хранилище к начальным данным
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed()
}

func (s *Store) init() {
	s.categories = &table[entity.Category]{
		kind:   entity.KindCategory,
		id:     func(c *entity.Category) int64 { return c.ID },
		setID:  func(c *entity.Category, id int64) { c.ID = id },
		clone:  cloneCategory,
		unique: map[string]func(*entity.Category) string{"slug": func(c *entity.Category) string { return lowerKey(c.Slug) }},
	}
	s.brands = &table[entity.Brand]{
		kind:   entity.KindBrand,
		id:     func(b *entity.Brand) int64 { return b.ID },
		setID:  func(b *entity.Brand, id int64) { b.ID = id },
		clone:  same[entity.Brand],
		unique: map[string]func(*entity.Brand) string{"slug": func(b *entity.Brand) string { return lowerKey(b.Slug) }},
	}
	s.products = &table[entity.Product]{
		kind:   entity.KindProduct,
		id:     func(p *entity.Product) int64 { return p.ID },
		setID:  func(p *entity.Product, id int64) { p.ID = id },
		clone:  same[entity.Product],
		unique: map[string]func(*entity.Product) string{"slug": func(p *entity.Product) string { return lowerKey(p.Slug) }},
	}
	s.variants = &table[entity.ProductVariant]{
		kind:  entity.KindProductVariant,
		id:    func(v *entity.ProductVariant) int64 { return v.ID },
		setID: func(v *entity.ProductVariant, id int64) { v.ID = id },
		clone: cloneVariant,
		fks:   map[string]func(*entity.ProductVariant) int64{"productId": func(v *entity.ProductVariant) int64 { return v.ProductID }},
	}
	s.attributes = &table[entity.VariantAttribute]{
		kind:  entity.KindVariantAttribute,
		id:    func(a *entity.VariantAttribute) int64 { return a.ID },
		setID: func(a *entity.VariantAttribute, id int64) { a.ID = id },
		clone: same[entity.VariantAttribute],
		fks: map[string]func(*entity.VariantAttribute) int64{
			"productVariantId": func(a *entity.VariantAttribute) int64 { return a.ProductVariantID },
		},
	}
	s.productImages = &table[entity.ProductImage]{
		kind:  entity.KindProductImage,
		id:    func(i *entity.ProductImage) int64 { return i.ID },
		setID: func(i *entity.ProductImage, id int64) { i.ID = id },
		clone: same[entity.ProductImage],
		fks:   map[string]func(*entity.ProductImage) int64{"productId": func(i *entity.ProductImage) int64 { return i.ProductID }},
	}
	s.reviews = &table[entity.Review]{
		kind:  entity.KindReview,
		id:    func(r *entity.Review) int64 { return r.ID },
		setID: func(r *entity.Review, id int64) { r.ID = id },
		clone: same[entity.Review],
		fks:   map[string]func(*entity.Review) int64{"productId": func(r *entity.Review) int64 { return r.ProductID }},
	}
	s.reviewImages = &table[entity.ReviewImage]{
		kind:  entity.KindReviewImage,
		id:    func(i *entity.ReviewImage) int64 { return i.ID },
		setID: func(i *entity.ReviewImage, id int64) { i.ID = id },
		clone: same[entity.ReviewImage],
		fks:   map[string]func(*entity.ReviewImage) int64{"reviewId": func(i *entity.ReviewImage) int64 { return i.ReviewID }},
	}
	s.coupons = &table[entity.Coupon]{
		kind:   entity.KindCoupon,
		id:     func(c *entity.Coupon) int64 { return c.ID },
		setID:  func(c *entity.Coupon, id int64) { c.ID = id },
		clone:  same[entity.Coupon],
		unique: map[string]func(*entity.Coupon) string{"code": func(c *entity.Coupon) string { return lowerKey(c.Code) }},
	}
	s.paymentMethods = &table[entity.PaymentMethod]{
		kind:   entity.KindPaymentMethod,
		id:     func(p *entity.PaymentMethod) int64 { return p.ID },
		setID:  func(p *entity.PaymentMethod, id int64) { p.ID = id },
		clone:  same[entity.PaymentMethod],
		unique: map[string]func(*entity.PaymentMethod) string{"code": func(p *entity.PaymentMethod) string { return lowerKey(p.Code) }},
	}

	s.tables = map[entity.Kind]cascadeTable{
		entity.KindCategory:         s.categories,
		entity.KindBrand:            s.brands,
		entity.KindProduct:          s.products,
		entity.KindProductVariant:   s.variants,
		entity.KindVariantAttribute: s.attributes,
		entity.KindProductImage:     s.productImages,
		entity.KindReview:           s.reviews,
		entity.KindReviewImage:      s.reviewImages,
		entity.KindCoupon:           s.coupons,
		entity.KindPaymentMethod:    s.paymentMethods,
	}
}

// seed перезаписывает таблицы на месте: указатели на таблицы читаются без замка
func (s *Store) seed() {
	f := s.fixtures
	if f == nil {
		f = &Fixtures{}
	}
	s.categories.load(f.Categories)
	s.brands.load(f.Brands)
	s.products.load(f.Products)
	s.variants.load(f.Variants)
	s.attributes.load(f.Attributes)
	s.productImages.load(f.ProductImages)
	s.reviews.load(f.Reviews)
	s.reviewImages.load(f.ReviewImages)
	s.coupons.load(f.Coupons)
	s.paymentMethods.load(f.PaymentMethods)
}

// wait имитирует сетевую задержку; выполняется до взятия замка
func (s *Store) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// tick возвращает текущее время, строго большее prev
func (s *Store) tick(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}

// cascade удаляет root и всех его потомков по графу владения.
// Вызывается под замком, после проверки существования root.
// Возвращает только дочерние записи, сам root в результат не входит
func (s *Store) cascade(root entity.Ref) ([]entity.Ref, error) {
	removed, err := repository.Cascade(
		repository.Ownerships,
		root,
		func(o repository.Ownership, parentID int64) ([]int64, error) {
			return s.tables[o.Child].childIDs(o.ForeignKey, parentID), nil
		},
		func(ref entity.Ref) error {
			if !s.tables[ref.Kind].removeID(ref.ID) {
				return repository.NotFound(ref.Kind)
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	cascaded := removed[:len(removed)-1]
	for _, ref := range cascaded {
		metrics.RecordCascadeDelete(string(ref.Kind))
	}
	return cascaded, nil
}

func track(op metrics.StoreOperation, kind entity.Kind) func(*error) {
	timer := metrics.NewStoreTimer(serviceName, backendName, op, string(kind))
	return func(err *error) {
		timer.Done(*err)
	}
}

// Ниже - общие операции над таблицами; адаптеры конкретных сущностей в repos.go

func list[T any](ctx context.Context, s *Store, t *table[T]) ([]T, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return t.all(), nil
}

func getByID[T any](ctx context.Context, s *Store, t *table[T], id int64) (*T, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, err := t.get(id)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func getByKey[T any](ctx context.Context, s *Store, t *table[T], field, value string) (*T, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, err := t.lookup(field, value)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func filter[T any](ctx context.Context, s *Store, t *table[T], match func(*T) bool) ([]T, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return t.where(match), nil
}

// create вставляет копию v; prepare выставляет служебные поля и проверяет инварианты
func create[T any](ctx context.Context, s *Store, t *table[T], v T, prepare func(*T, time.Time) error) (*T, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t.setID(&v, 0)
	if err := prepare(&v, s.now()); err != nil {
		return nil, err
	}
	if err := t.checkUnique(&v); err != nil {
		return nil, err
	}

	stored := t.insert(v)
	return &stored, nil
}

// update применяет mutate к копии записи и сохраняет её целиком, только если все проверки прошли
func update[T any](ctx context.Context, s *Store, t *table[T], id int64, mutate func(*T) error) (*T, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := t.get(id)
	if err != nil {
		return nil, err
	}
	if err := mutate(&row); err != nil {
		return nil, err
	}
	t.setID(&row, id)
	if err := t.checkUnique(&row); err != nil {
		return nil, err
	}

	t.put(row)
	return &row, nil
}

// remove удаляет запись вместе с каскадом; guard может запретить удаление
func remove[T any](ctx context.Context, s *Store, t *table[T], id int64, guard func(*T) error) ([]entity.Ref, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := t.get(id)
	if err != nil {
		return nil, err
	}
	if guard != nil {
		if err := guard(&row); err != nil {
			return nil, err
		}
	}

	return s.cascade(entity.Ref{Kind: t.kind, ID: id})
}
