package memory

import (
	"strings"

	"beautyadmin/admin-service/internal/app/admin/entity"
	"beautyadmin/admin-service/internal/app/admin/repository"
)

// cascadeTable - то, что нужно обходу графа владения от любой таблицы
type cascadeTable interface {
	childIDs(foreignKey string, parentID int64) []int64
	removeID(id int64) bool
}

// table хранит записи одного типа в порядке вставки.
// Не потокобезопасна: все вызовы идут под замком Store
type table[T any] struct {
	kind  entity.Kind
	rows  []T
	seq   int64
	id    func(*T) int64
	setID func(*T, int64)
	clone func(T) T

	// уникальные поля: имя -> нормализованный ключ ("" не индексируется)
	unique map[string]func(*T) string
	// внешние ключи: имя поля в JSON -> значение
	fks map[string]func(*T) int64
}

func (t *table[T]) index(id int64) int {
	for i := range t.rows {
		if t.id(&t.rows[i]) == id {
			return i
		}
	}
	return -1
}

func (t *table[T]) all() []T {
	out := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, t.clone(row))
	}
	return out
}

func (t *table[T]) get(id int64) (T, error) {
	i := t.index(id)
	if i < 0 {
		var zero T
		return zero, repository.NotFound(t.kind)
	}
	return t.clone(t.rows[i]), nil
}

func (t *table[T]) where(match func(*T) bool) []T {
	out := make([]T, 0)
	for i := range t.rows {
		if match(&t.rows[i]) {
			out = append(out, t.clone(t.rows[i]))
		}
	}
	return out
}

// lookup ищет по уникальному полю без учёта регистра
func (t *table[T]) lookup(field, value string) (T, error) {
	key := t.unique[field]
	want := strings.ToLower(strings.TrimSpace(value))
	for i := range t.rows {
		if want != "" && key(&t.rows[i]) == want {
			return t.clone(t.rows[i]), nil
		}
	}
	var zero T
	return zero, repository.NotFound(t.kind)
}

// checkUnique проверяет v против всех остальных записей (сама v по id пропускается)
func (t *table[T]) checkUnique(v *T) error {
	for field, key := range t.unique {
		k := key(v)
		if k == "" {
			continue
		}
		for i := range t.rows {
			if t.id(&t.rows[i]) == t.id(v) {
				continue
			}
			if key(&t.rows[i]) == k {
				return repository.DuplicateKey(t.kind, field, k)
			}
		}
	}
	return nil
}

func (t *table[T]) insert(v T) T {
	t.seq++
	t.setID(&v, t.seq)
	t.rows = append(t.rows, t.clone(v))
	return t.clone(v)
}

func (t *table[T]) put(v T) {
	if i := t.index(t.id(&v)); i >= 0 {
		t.rows[i] = t.clone(v)
	}
}

func (t *table[T]) removeID(id int64) bool {
	i := t.index(id)
	if i < 0 {
		return false
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return true
}

func (t *table[T]) childIDs(foreignKey string, parentID int64) []int64 {
	fk, ok := t.fks[foreignKey]
	if !ok {
		return nil
	}
	var ids []int64
	for i := range t.rows {
		if fk(&t.rows[i]) == parentID {
			ids = append(ids, t.id(&t.rows[i]))
		}
	}
	return ids
}

// load заменяет содержимое копией rows; последовательность продолжается с максимального id
func (t *table[T]) load(rows []T) {
	t.rows = make([]T, 0, len(rows))
	t.seq = 0
	for _, row := range rows {
		t.rows = append(t.rows, t.clone(row))
		if id := t.id(&row); id > t.seq {
			t.seq = id
		}
	}
}

func lowerKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cloneInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat64(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func same[T any](v T) T { return v }
