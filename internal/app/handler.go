package app

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/carmelngoyi/ccgoodies/internal/catalog"
	"github.com/carmelngoyi/ccgoodies/internal/sec"
	"github.com/carmelngoyi/ccgoodies/internal/store"
)

type handler struct {
	store  store.Store
	logger *slog.Logger
}

func (h handler) register(e *echo.Echo) {
	e.POST("/signup", h.signup)
	e.POST("/login", h.login)

	for _, category := range catalog.Categories {
		grp := e.Group("/" + category)
		grp.GET("", h.listProducts(category))
		grp.POST("", h.createProduct(category))
		grp.PUT("/:id", h.updateProduct(category))
		grp.DELETE("/:id", h.deleteProduct(category))
	}

	api := e.Group("/api")
	api.POST("/userBankingDetails", h.saveBankingDetails)
	api.POST("/orders", h.saveOrder)
	api.GET("/orders/:email", h.listOrders)

	users := e.Group("/users", sec.Gate(h.store))
	users.GET("", h.listUsers)
	users.PUT("/:id", h.updateUser)
	users.DELETE("/:id", h.deleteUser)
}

type signupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Address         string `json:"address"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h handler) signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := sec.ValidateNewCredential(req.Email, req.Password, req.ConfirmPassword); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	doc, err := catalog.ToDocument(catalog.User{
		Name:      req.Name,
		Email:     req.Email,
		Address:   req.Address,
		Password:  sec.EncodeCredential(req.Password),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return h.serverError(c, "Internal server error", err)
	}

	// Uniqueness is enforced by the store's index on the email field, so two
	// concurrent signups cannot both succeed.
	id, err := h.store.InsertOne(c.Request().Context(), catalog.Users, doc)
	if errors.Is(err, store.ErrAlreadyExists) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "Email already registered"})
	} else if err != nil {
		return h.serverError(c, "Internal server error", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "User created", "user_id": id})
}

// login evaluates the same Basic Auth header shape as the gate, but inline.
// Unlike the gate it answers every credential failure with one generic body,
// so the response cannot be used to probe which emails are registered.
func (h handler) login(c echo.Context) error {
	identifier, secret, err := sec.ParseHeader(c.Request().Header.Get(echo.HeaderAuthorization))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authorization header missing or invalid"})
	}

	user, err := sec.Verify(c.Request().Context(), h.store, identifier, secret)
	switch {
	case errors.Is(err, sec.ErrIdentityNotFound), errors.Is(err, sec.ErrSecretMismatch):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
	case err != nil:
		return h.serverError(c, "Internal server error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"user":    echo.Map{"email": user.Email, "_id": user.ID},
	})
}

func (h handler) listProducts(collection string) echo.HandlerFunc {
	return func(c echo.Context) error {
		docs, err := h.store.FindMany(c.Request().Context(), collection, store.Filter{})
		if err != nil {
			return h.serverError(c, "Failed to fetch products", err)
		}
		if docs == nil {
			docs = []store.Document{}
		}
		return c.JSON(http.StatusOK, docs)
	}
}

func (h handler) createProduct(collection string) echo.HandlerFunc {
	return func(c echo.Context) error {
		var doc store.Document
		if err := c.Bind(&doc); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
		}
		id, err := h.store.InsertOne(c.Request().Context(), collection, doc)
		if err != nil {
			return h.serverError(c, "Failed to add product", err)
		}
		return c.JSON(http.StatusCreated, echo.Map{"message": "Product created", "id": id})
	}
}

func (h handler) updateProduct(collection string) echo.HandlerFunc {
	return func(c echo.Context) error {
		var patch store.Document
		if err := c.Bind(&patch); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
		}
		filter := store.Filter{store.IDField: c.Param("id")}
		if err := h.store.UpdateOne(c.Request().Context(), collection, filter, patch); err != nil {
			return h.serverError(c, "Failed to update product", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "Product updated"})
	}
}

func (h handler) deleteProduct(collection string) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter := store.Filter{store.IDField: c.Param("id")}
		if err := h.store.DeleteOne(c.Request().Context(), collection, filter); err != nil {
			return h.serverError(c, "Failed to delete product", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted"})
	}
}

type bankingRequest struct {
	Email         string `json:"email"`
	Method        string `json:"method"`
	CardNumber    string `json:"cardNumber"`
	Expiry        string `json:"expiry"`
	CVV           string `json:"cvv"`
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
}

func (h handler) saveBankingDetails(c echo.Context) error {
	var req bankingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	// Expiry and CVV are deliberately not persisted.
	doc, err := catalog.ToDocument(catalog.BankingDetail{
		Email:         req.Email,
		Method:        req.Method,
		CardNumber:    req.CardNumber,
		AccountNumber: req.AccountNumber,
		BankName:      req.BankName,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		return h.serverError(c, "Failed to save banking details", err)
	}
	if _, err := h.store.InsertOne(c.Request().Context(), catalog.BankingDetails, doc); err != nil {
		return h.serverError(c, "Failed to save banking details", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Banking details saved"})
}

func (h handler) saveOrder(c echo.Context) error {
	var doc store.Document
	if err := c.Bind(&doc); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if _, err := h.store.InsertOne(c.Request().Context(), catalog.Orders, doc); err != nil {
		return h.serverError(c, "Failed to save order", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Order saved"})
}

func (h handler) listOrders(c echo.Context) error {
	filter := store.Filter{"email": c.Param("email")}
	docs, err := h.store.FindMany(c.Request().Context(), catalog.Orders, filter)
	if err != nil {
		return h.serverError(c, "Failed to fetch orders", err)
	}
	if docs == nil {
		docs = []store.Document{}
	}
	return c.JSON(http.StatusOK, docs)
}

func (h handler) listUsers(c echo.Context) error {
	docs, err := h.store.FindMany(c.Request().Context(), catalog.Users, store.Filter{})
	if err != nil {
		return h.serverError(c, "Failed to fetch users", err)
	}
	if docs == nil {
		docs = []store.Document{}
	}
	return c.JSON(http.StatusOK, docs)
}

func (h handler) updateUser(c echo.Context) error {
	var patch store.Document
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	filter := store.Filter{store.IDField: c.Param("id")}
	if err := h.store.UpdateOne(c.Request().Context(), catalog.Users, filter, patch); err != nil {
		return h.serverError(c, "Failed to update user", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User updated"})
}

func (h handler) deleteUser(c echo.Context) error {
	filter := store.Filter{store.IDField: c.Param("id")}
	if err := h.store.DeleteOne(c.Request().Context(), catalog.Users, filter); err != nil {
		return h.serverError(c, "Failed to delete user", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted"})
}

// serverError logs the underlying cause and answers with a fixed public
// message, keeping store-layer details out of response bodies.
func (h handler) serverError(c echo.Context, public string, err error) error {
	h.logger.ErrorContext(c.Request().Context(), "request failed",
		slog.String("route", c.Path()),
		slog.Any("error", err),
	)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": public})
}
