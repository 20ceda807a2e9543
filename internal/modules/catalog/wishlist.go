package catalog

import (
	"context"

	"github.com/google/uuid"

	dataagg "github.com/yungbote/coursecatalog-backend/internal/data/aggregates"
	types "github.com/yungbote/coursecatalog-backend/internal/domain"
	domainagg "github.com/yungbote/coursecatalog-backend/internal/domain/aggregates"
	"github.com/yungbote/coursecatalog-backend/internal/platform/dbctx"
)

// AddToWishlist is idempotent; created is false when the course was already wishlisted.
func (u Usecases) AddToWishlist(ctx context.Context, userID uuid.UUID, courseSlug string) (*types.WishlistEntry, bool, error) {
	const op = "Catalog.Wishlist.Add"
	if userID == uuid.Nil {
		return nil, false, domainagg.InvalidInput(op, "user is required")
	}
	var (
		entry   *types.WishlistEntry
		created bool
	)
	err := u.inTx(ctx, op, func(dbc dbctx.Context) error {
		course, err := u.courseBySlug(dbc, op, courseSlug)
		if err != nil {
			return err
		}
		if created, err = u.deps.Wishlist.InsertIfAbsent(dbc, userID, course.ID); err != nil {
			return err
		}
		entry, err = u.deps.Wishlist.Get(dbc, userID, course.ID)
		if err != nil {
			return err
		}
		if entry == nil {
			return domainagg.NotFound(op, "wishlist entry not found")
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	u.deps.Metrics.IncWishlistMutation("add", created)
	return entry, created, nil
}

// RemoveFromWishlist hard-deletes the entry and reports how many rows went away (0 or 1).
func (u Usecases) RemoveFromWishlist(ctx context.Context, userID uuid.UUID, courseSlug string) (int64, error) {
	const op = "Catalog.Wishlist.Remove"
	dbc := u.read(ctx)
	course, err := u.courseBySlug(dbc, op, courseSlug)
	if err != nil {
		return 0, err
	}
	n, err := u.deps.Wishlist.Delete(dbc, userID, course.ID)
	if err != nil {
		return 0, dataagg.MapError(op, err)
	}
	u.deps.Metrics.IncWishlistMutation("remove", n > 0)
	return n, nil
}

func (u Usecases) ListWishlist(ctx context.Context, userID uuid.UUID) ([]*types.WishlistEntry, error) {
	rows, err := u.deps.Wishlist.ListByUser(u.read(ctx), userID)
	if err != nil {
		return nil, dataagg.MapError("Catalog.Wishlist.List", err)
	}
	return rows, nil
}
