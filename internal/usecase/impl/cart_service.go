// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"bites/config"
	"bites/internal/domain/entity"
	domainerrors "bites/internal/domain/errors"
	"bites/internal/domain/repository"
	"bites/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface. It is the single owner of
// the rule that an open cart holds items from at most one restaurant, and of
// the create/accumulate/reactivate reconciliation of cart lines.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	guard       *CartGuard
	config      *config.Config
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	Guard       *CartGuard
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCartService creates a new cart service instance
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		guard:       params.Guard,
		config:      params.Config,
		logger:      params.Logger,
	}
}

// AddOrIncrementLine adds quantityDelta of a product to the user's cart,
// creating, incrementing or reactivating the single line for that product.
// All validation happens before the first mutating call; a rejected add leaves
// the cart exactly as it was.
func (s *cartService) AddOrIncrementLine(ctx context.Context, userID, productID uuid.UUID, quantityDelta int) (*usecase.CartMutation, error) {
	if userID == uuid.Nil {
		return nil, errors.Wrap(domainerrors.ErrNotAuthenticated, "add to cart requires a signed-in user")
	}
	if quantityDelta < 1 {
		return nil, errors.Wrap(domainerrors.ErrInvalidQuantity, "quantity delta must be a positive integer")
	}

	cart, err := s.cartRepo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrCartUnavailable, "failed to get or create cart")
	}

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return nil, errors.Wrap(err, "failed to find product")
	}
	if !product.HasRestaurant() {
		return nil, errors.Wrap(domainerrors.ErrAmbiguousRestaurant, "product has no resolvable owning restaurant")
	}
	if !product.IsAvailable {
		return nil, errors.Wrap(domainerrors.ErrProductUnavailable, "product is not orderable")
	}

	unlock := s.guard.Lock(cart.ID)
	defer unlock()

	lines, err := s.cartRepo.FindLinesByCart(ctx, cart.ID)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrCartUnavailable, "failed to load cart lines")
	}

	active := filterActive(lines)
	if scope, ok := entity.RestaurantScope(active); ok {
		// The invariant guarantees any active line implies the scope, but a
		// stale or out-of-band write could have broken it: verify the whole
		// set and block further writes when it is mixed.
		if !entity.HomogeneousScope(active) {
			s.logger.Error("cart active lines reference more than one restaurant",
				slog.String("cartID", cart.ID.String()),
				slog.Int("activeLines", len(active)),
			)

			return nil, errors.Wrap(domainerrors.ErrCartInconsistent, "active lines reference more than one restaurant")
		}

		if product.RestaurantID != scope {
			return nil, errors.Wrap(domainerrors.ErrCrossRestaurantConflict, "product belongs to a different restaurant than the cart")
		}
	}

	line, err := s.cartRepo.FindLineByCartAndProduct(ctx, cart.ID, productID)
	if err != nil && !errors.Is(err, repository.ErrCartLineNotFound) {
		return nil, errors.Wrap(err, "failed to look up cart line")
	}

	prospective := quantityDelta
	if line != nil && line.Status.IsActive() {
		prospective = line.Quantity + quantityDelta
	}
	if maxQty := s.maxLineQuantity(); maxQty > 0 && prospective > maxQty {
		return nil, errors.Wrapf(domainerrors.ErrInvalidQuantity, "quantity %d exceeds the per-line maximum of %d", prospective, maxQty)
	}

	// Active count after the mutation, derived locally. Used as the fallback
	// when the best-effort count refresh fails.
	fallbackCount := int64(len(active))
	if line == nil || !line.Status.IsActive() {
		fallbackCount++
	}

	if line == nil {
		line = entity.NewCartLine(cart.ID, product, quantityDelta)
		if err := s.cartRepo.CreateLine(ctx, line); err != nil {
			return nil, errors.Wrap(err, "failed to create cart line")
		}
	} else {
		line.ApplyAdd(product.Price, quantityDelta)
		if err := s.cartRepo.UpdateLine(ctx, line); err != nil {
			return nil, errors.Wrap(err, "failed to update cart line")
		}
	}

	return &usecase.CartMutation{
		Line:            line,
		ActiveLineCount: s.refreshCount(ctx, cart.ID, fallbackCount),
	}, nil
}

// DeactivateLine soft-removes a product from the user's cart. The line keeps
// its quantity as history and only flips to inactive.
func (s *cartService) DeactivateLine(ctx context.Context, userID, productID uuid.UUID) (*usecase.CartMutation, error) {
	if userID == uuid.Nil {
		return nil, errors.Wrap(domainerrors.ErrNotAuthenticated, "cart removal requires a signed-in user")
	}

	cart, err := s.cartRepo.FindCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "user has no open cart")
		}

		return nil, errors.Wrap(domainerrors.ErrCartUnavailable, "failed to find cart")
	}

	unlock := s.guard.Lock(cart.ID)
	defer unlock()

	lines, err := s.cartRepo.FindLinesByCart(ctx, cart.ID)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrCartUnavailable, "failed to load cart lines")
	}

	line, err := s.cartRepo.FindLineByCartAndProduct(ctx, cart.ID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrCartLineNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "product is not in the cart")
		}

		return nil, errors.Wrap(err, "failed to look up cart line")
	}

	// Active count after the mutation, derived locally. Used as the fallback
	// when the best-effort count refresh fails.
	fallbackCount := int64(len(filterActive(lines)))
	if line.Status.IsActive() {
		fallbackCount--
		line.Deactivate()
		if err := s.cartRepo.UpdateLine(ctx, line); err != nil {
			return nil, errors.Wrap(err, "failed to deactivate cart line")
		}
	}

	return &usecase.CartMutation{
		Line:            line,
		ActiveLineCount: s.refreshCount(ctx, cart.ID, fallbackCount),
	}, nil
}

// ClearCart deactivates every active line of the user's cart, releasing its
// restaurant scope. Clearing a cart that was never created is a no-op.
func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return errors.Wrap(domainerrors.ErrNotAuthenticated, "cart clearing requires a signed-in user")
	}

	cart, err := s.cartRepo.FindCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil
		}

		return errors.Wrap(domainerrors.ErrCartUnavailable, "failed to find cart")
	}

	unlock := s.guard.Lock(cart.ID)
	defer unlock()

	if err := s.cartRepo.DeactivateLines(ctx, cart.ID); err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}

// GetCart returns the user's cart with all its lines, creating the cart lazily.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	if userID == uuid.Nil {
		return nil, errors.Wrap(domainerrors.ErrNotAuthenticated, "cart access requires a signed-in user")
	}

	cart, err := s.cartRepo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrCartUnavailable, "failed to get or create cart")
	}

	lines, err := s.cartRepo.FindLinesByCart(ctx, cart.ID)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrCartUnavailable, "failed to load cart lines")
	}
	cart.Lines = lines

	// A mixed active set is reported but does not block the read that found it.
	if active := cart.ActiveLines(); len(active) > 0 && !entity.HomogeneousScope(active) {
		s.logger.Error("cart active lines reference more than one restaurant",
			slog.String("cartID", cart.ID.String()),
			slog.Int("activeLines", len(active)),
		)
	}

	return cart, nil
}

// RefreshActiveLineCount re-reads the number of active lines in the user's cart.
func (s *cartService) RefreshActiveLineCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, errors.Wrap(domainerrors.ErrNotAuthenticated, "cart access requires a signed-in user")
	}

	cart, err := s.cartRepo.FindCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return 0, nil
		}

		return 0, errors.Wrap(domainerrors.ErrCartUnavailable, "failed to find cart")
	}

	count, err := s.cartRepo.CountActiveLines(ctx, cart.ID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count active cart lines")
	}

	return count, nil
}

// refreshCount re-reads the active line count after a mutation. The refresh is
// a best-effort follow-up: a failure is logged and the locally derived fallback
// is returned instead, never an error, since the mutation itself already succeeded.
func (s *cartService) refreshCount(ctx context.Context, cartID uuid.UUID, fallback int64) int64 {
	count, err := s.cartRepo.CountActiveLines(ctx, cartID)
	if err != nil {
		s.logger.Warn("cart count refresh failed after mutation",
			slog.String("cartID", cartID.String()),
			slog.Any("error", err),
		)

		return fallback
	}

	return count
}

func (s *cartService) maxLineQuantity() int {
	if s.config == nil || s.config.Cart == nil {
		return 0
	}

	return s.config.Cart.MaxLineQuantity
}

func filterActive(lines []*entity.CartLine) []*entity.CartLine {
	active := make([]*entity.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.Status.IsActive() {
			active = append(active, line)
		}
	}

	return active
}
