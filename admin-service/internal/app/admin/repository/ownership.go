package repository

import "beautyadmin/admin-service/internal/app/admin/entity"

// Ownership - декларативное отношение владения: при удалении Parent
// удаляются все Child, у которых ForeignKey == Parent.ID
type Ownership struct {
	Parent     entity.Kind
	Child      entity.Kind
	ForeignKey string // имя поля в JSON (productId)
	Column     string // имя колонки в SQL (product_id)
}

// Ownerships - граф каскадного удаления.
// Category->Product и Brand->Product намеренно не каскадируются: висячие FK допустимы
var Ownerships = []Ownership{
	{Parent: entity.KindProduct, Child: entity.KindProductVariant, ForeignKey: "productId", Column: "product_id"},
	{Parent: entity.KindProductVariant, Child: entity.KindVariantAttribute, ForeignKey: "productVariantId", Column: "product_variant_id"},
	{Parent: entity.KindReview, Child: entity.KindReviewImage, ForeignKey: "reviewId", Column: "review_id"},
}

// ChildrenOf возвращает отношения, в которых kind является владельцем
func ChildrenOf(graph []Ownership, kind entity.Kind) []Ownership {
	var out []Ownership
	for _, o := range graph {
		if o.Parent == kind {
			out = append(out, o)
		}
	}
	return out
}

// Cascade обходит граф владения в глубину и удаляет сначала потомков, затем сам корень.
// children(o, parentID) отдаёт id потомков по отношению o, remove удаляет одну запись.
// Возвращает удалённые записи в порядке удаления; корень - последний элемент
func Cascade(
	graph []Ownership,
	root entity.Ref,
	children func(o Ownership, parentID int64) ([]int64, error),
	remove func(ref entity.Ref) error,
) ([]entity.Ref, error) {
	var removed []entity.Ref
	visited := make(map[entity.Ref]bool)

	var walk func(ref entity.Ref) error
	walk = func(ref entity.Ref) error {
		if visited[ref] {
			return nil
		}
		visited[ref] = true

		for _, o := range ChildrenOf(graph, ref.Kind) {
			ids, err := children(o, ref.ID)
			if err != nil {
				return err
			}
			for _, id := range ids {
				if err := walk(entity.Ref{Kind: o.Child, ID: id}); err != nil {
					return err
				}
			}
		}

		if err := remove(ref); err != nil {
			return err
		}
		removed = append(removed, ref)
		return nil
	}

	if err := walk(root); err != nil {
		return nil, err
	}
	return removed, nil
}
