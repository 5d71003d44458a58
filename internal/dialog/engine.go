package dialog

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"orderbot/internal/domain"
	productrepo "orderbot/internal/repository/product"
	catalogsvc "orderbot/internal/service/catalog"
	checkoutsvc "orderbot/internal/service/checkout"
)

type sessionStore interface {
	Get(ctx context.Context, userChatID int64) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
}

type userStore interface {
	GetOrCreate(ctx context.Context, chatID int64, username, firstName, lastName string) (*domain.User, error)
	UpdatePhone(ctx context.Context, chatID int64, phone string) error
	ListChatIDs(ctx context.Context) ([]int64, error)
}

type cartService interface {
	Get(ctx context.Context, userChatID int64) ([]domain.CartLine, error)
	Add(ctx context.Context, userChatID int64, productID string, quantity int) (*domain.Product, error)
	Adjust(ctx context.Context, userChatID int64, productID string, delta int) error
	SetQuantity(ctx context.Context, userChatID int64, productID string, quantity int) error
	Clear(ctx context.Context, userChatID int64) error
}

type catalogService interface {
	MainCategories(ctx context.Context) ([]domain.Category, error)
	Subcategories(ctx context.Context, parentID string) ([]domain.Category, error)
	AllCategories(ctx context.Context) ([]domain.Category, error)
	LeafCategories(ctx context.Context) ([]domain.Category, error)
	Category(ctx context.Context, id string) (*domain.Category, error)
	CreateCategory(ctx context.Context, name string, parentID *string) (*domain.Category, error)
	RenameCategory(ctx context.Context, id, name string) error
	DeleteCategory(ctx context.Context, id string) error
	ActiveProducts(ctx context.Context, categoryID string) ([]domain.Product, error)
	Product(ctx context.Context, id string) (*domain.Product, error)
	AllProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, in catalogsvc.CreateProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, patch productrepo.Patch) error
	DeleteProduct(ctx context.Context, id string) error
}

type checkoutService interface {
	PlaceOrder(ctx context.Context, in checkoutsvc.PlaceOrderInput) (*domain.Order, error)
	History(ctx context.Context, userChatID int64, limit int) ([]domain.Order, error)
}

type rosterStore interface {
	Contains(ctx context.Context, chatID int64) (bool, error)
	List(ctx context.Context) ([]domain.RosterEntry, error)
	Add(ctx context.Context, chatID, addedBy int64) error
	Remove(ctx context.Context, chatID int64) error
}

// Broadcaster delivers a text to many recipients and reports how many
// deliveries succeeded.
type Broadcaster interface {
	Broadcast(ctx context.Context, recipients []int64, text string) int
}

// Engine drives every dialogue: it loads the sender's session, applies one
// event and returns the render instructions for the transport. All state
// lives in the session store, so any number of engine instances can serve the
// same user.
type Engine struct {
	sessions  sessionStore
	users     userStore
	carts     cartService
	catalog   catalogService
	checkout  checkoutService
	admins    rosterStore
	receivers rosterStore
	broadcast Broadcaster

	deliveryCostCents int64
	pickupAddress     string
	logger            *log.Logger
}

type Deps struct {
	Sessions  sessionStore
	Users     userStore
	Carts     cartService
	Catalog   catalogService
	Checkout  checkoutService
	Admins    rosterStore
	Receivers rosterStore
	Broadcast Broadcaster

	DeliveryCostCents int64
	PickupAddress     string
	Logger            *log.Logger
}

func New(d Deps) *Engine {
	if d.Logger == nil {
		d.Logger = log.New(io.Discard, "", 0)
	}
	return &Engine{
		sessions:          d.Sessions,
		users:             d.Users,
		carts:             d.Carts,
		catalog:           d.Catalog,
		checkout:          d.Checkout,
		admins:            d.Admins,
		receivers:         d.Receivers,
		broadcast:         d.Broadcast,
		deliveryCostCents: d.DeliveryCostCents,
		pickupAddress:     d.PickupAddress,
		logger:            d.Logger,
	}
}

// HandleEvent applies one user event and returns what to show. The session is
// saved after every event, including no-op ones.
func (e *Engine) HandleEvent(ctx context.Context, ev Event) ([]Render, error) {
	sess, err := e.sessions.Get(ctx, ev.UserID())
	if errors.Is(err, domain.ErrNotFound) {
		sess = &domain.Session{UserChatID: ev.UserID(), State: domain.StateIdle}
	} else if err != nil {
		return nil, err
	}

	renders, err := e.dispatch(ctx, sess, ev)
	if err != nil {
		return nil, err
	}
	if err := e.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return renders, nil
}

func (e *Engine) dispatch(ctx context.Context, sess *domain.Session, ev Event) ([]Render, error) {
	switch ev := ev.(type) {
	case TextInput:
		text := strings.TrimSpace(ev.Text)
		if strings.HasPrefix(text, "/") {
			return e.handleCommand(ctx, sess, text, ev.Profile)
		}
		if sess.Checkout != nil {
			return e.checkoutText(ctx, sess, text)
		}
		if sess.InAdminFlow() {
			return e.adminText(ctx, sess, text)
		}
		return e.idleText(ctx, sess, text)

	case ButtonPress:
		action, ok := ParseAction(ev.Payload)
		if !ok {
			e.logger.Printf("dialog: unknown payload %q chat_id=%d", ev.Payload, sess.UserChatID)
			return nil, nil
		}
		return e.handleAction(ctx, sess, action)

	case ContactShare:
		if sess.Checkout != nil && sess.State == domain.StateAwaitingPhone {
			return e.checkoutPhone(ctx, sess, ev.Phone)
		}
		return nil, nil
	}
	return nil, nil
}

// handleCommand serves slash commands. Commands are never captured as flow
// input: /start and /admin restart their flow from any state, /cancel returns
// to idle keeping the cart.
func (e *Engine) handleCommand(ctx context.Context, sess *domain.Session, cmd string, p Profile) ([]Render, error) {
	switch cmd {
	case "/start":
		if _, err := e.users.GetOrCreate(ctx, sess.UserChatID, p.Username, p.FirstName, p.LastName); err != nil {
			return nil, err
		}
		sess.Reset()
		return []Render{mainMenu(welcomeText)}, nil
	case "/cancel":
		sess.Reset()
		return []Render{mainMenu("Cancelled.")}, nil
	case "/admin":
		ok, err := e.admins.Contains(ctx, sess.UserChatID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return []Render{text("No access.")}, nil
		}
		sess.Reset()
		sess.State = domain.StateAdminMenu
		sess.Admin = &domain.AdminContext{}
		return []Render{textKB("Admin menu", adminMenuKeyboard())}, nil
	}
	return nil, nil
}

func (e *Engine) idleText(ctx context.Context, sess *domain.Session, text string) ([]Render, error) {
	switch strings.ToLower(text) {
	case "menu":
		return e.showMainCategories(ctx)
	case "cart":
		return e.showCart(ctx, sess)
	case "my orders", "orders":
		orders, err := e.checkout.History(ctx, sess.UserChatID, 10)
		if err != nil {
			return nil, err
		}
		return []Render{mainMenu(historyView(orders))}, nil
	case "about":
		return []Render{mainMenu(aboutText)}, nil
	}
	return nil, nil
}

func (e *Engine) handleAction(ctx context.Context, sess *domain.Session, a Action) ([]Render, error) {
	// checkout entry overrides whatever flow the user was in
	if a.Kind == ActionCheckout {
		return e.startCheckout(ctx, sess)
	}
	if a.adminOnly() {
		ok, err := e.admins.Contains(ctx, sess.UserChatID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return []Render{text("No access.")}, nil
		}
		return e.adminAction(ctx, sess, a)
	}
	if sess.Checkout != nil {
		return e.checkoutAction(ctx, sess, a)
	}
	return e.browseAction(ctx, sess, a)
}

func (e *Engine) showMainCategories(ctx context.Context) ([]Render, error) {
	categories, err := e.catalog.MainCategories(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return []Render{text("The menu is empty for now.")}, nil
	}
	return []Render{textKB("Choose a category:", categoryKeyboard(categories, "back_main"))}, nil
}

func (e *Engine) showCart(ctx context.Context, sess *domain.Session) ([]Render, error) {
	lines, err := e.carts.Get(ctx, sess.UserChatID)
	if err != nil {
		return nil, err
	}
	view, kb := cartView(lines)
	return []Render{textKB(view, kb)}, nil
}
