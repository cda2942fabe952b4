package http

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pedidos-pro/internal/application/dto"
	"github.com/tu-usuario/pedidos-pro/internal/application/usecase"
	"github.com/tu-usuario/pedidos-pro/internal/infrastructure/storage"
)

// OrderHandler maneja las peticiones HTTP de órdenes, incluida la subida de
// adjuntos y el tracking público.
type OrderHandler struct {
	uc      *usecase.OrderUseCase
	uploads *storage.LocalStorage
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase, uploads *storage.LocalStorage) *OrderHandler {
	return &OrderHandler{uc: uc, uploads: uploads}
}

// List GET /api/orders?status=&customerId=
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var filter dto.OrderFilter
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid query parameters"))
	}
	list, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKList(list, len(list)))
}

// GetByID GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	order, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(order))
}

// Create POST /api/orders — acepta JSON o multipart. En multipart los
// campos llegan como valores de formulario (items como JSON) y los archivos
// del campo "files" se guardan y nacen como adjuntos de la orden.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if form, err := c.MultipartForm(); err == nil {
		if err := parseOrderForm(form, &in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
		}
		for _, fh := range form.File["files"] {
			fileURL, err := h.uploads.SaveOrderFile(fh)
			if err != nil {
				return respondError(c, err)
			}
			in.Attachments = append(in.Attachments, fileURL)
		}
	} else if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}
	order, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(order))
}

// parseOrderForm mapea los valores de un formulario multipart al request de
// creación. items viaja como string JSON; customerId y total como texto.
func parseOrderForm(form *multipart.Form, in *dto.CreateOrderRequest) error {
	val := func(name string) string {
		if v := form.Value[name]; len(v) > 0 {
			return v[0]
		}
		return ""
	}
	in.CustomerName = val("customerName")
	in.CustomerEmail = val("customerEmail")
	in.CustomerPhone = val("customerPhone")
	in.Notes = val("notes")
	if s := val("customerId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("customerId: %w", err)
		}
		in.CustomerID = &id
	}
	if s := val("total"); s != "" {
		total, err := decimal.NewFromString(s)
		if err != nil {
			return fmt.Errorf("total: %w", err)
		}
		in.Total = &total
	}
	if s := val("items"); s != "" {
		if err := json.Unmarshal([]byte(s), &in.Items); err != nil {
			return fmt.Errorf("items: %w", err)
		}
	}
	return nil
}

// Update PUT /api/orders/:id
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}
	order, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(order))
}

// Delete DELETE /api/orders/:id
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKMessage("Order deleted successfully"))
}

// UpdateStatus PATCH /api/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}
	order, err := h.uc.UpdateStatus(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(order))
}

// Upload POST /api/orders/:id/upload — multipart con campo "files".
// Cada archivo guardado se agrega como adjunto de la orden, en el orden en
// que llegó.
func (h *OrderHandler) Upload(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid multipart form"))
	}
	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("No files uploaded"))
	}

	var order *dto.OrderResponse
	for _, fh := range files {
		fileURL, err := h.uploads.SaveOrderFile(fh)
		if err != nil {
			return respondError(c, err)
		}
		order, err = h.uc.AddAttachment(c.Context(), id, fileURL)
		if err != nil {
			return respondError(c, err)
		}
	}
	return c.JSON(dto.OK(order))
}

// Track GET /track/:orderNumber — lookup público, sin autenticación.
func (h *OrderHandler) Track(c *fiber.Ctx) error {
	order, err := h.uc.TrackByNumber(c.Context(), c.Params("orderNumber"))
	if err != nil {
		return respondError(c, err)
	}
	if order == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.Error("Order not found"))
	}
	return c.JSON(dto.OK(order))
}

// GetByCustomer GET /api/orders/customer/:customerId
func (h *OrderHandler) GetByCustomer(c *fiber.Ctx) error {
	customerID, err := parseID(c, "customerId")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.GetByCustomer(c.Context(), customerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKList(list, len(list)))
}

// GetByStatus GET /api/orders/status/:status
func (h *OrderHandler) GetByStatus(c *fiber.Ctx) error {
	list, err := h.uc.GetByStatus(c.Context(), c.Params("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKList(list, len(list)))
}
