package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/YelzhanWeb/tableside/internal/domain"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
)

func (c *Client) ListMenu(ctx context.Context) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	if err := c.do(ctx, http.MethodGet, "/api/menu", nil, "", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddMenuItem uploads a new dish as multipart form data with its image.
func (c *Client) AddMenuItem(ctx context.Context, item interfaces.NewMenuItem) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":     item.Name,
		"price":    item.Price.String(),
		"category": item.Category,
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("failed to write field %s: %w", k, err)
		}
	}

	if item.Image != nil {
		part, err := w.CreateFormFile("image", item.ImageName)
		if err != nil {
			return fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := io.Copy(part, item.Image); err != nil {
			return fmt.Errorf("failed to copy image: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish form: %w", err)
	}

	return c.do(ctx, http.MethodPost, "/api/menu", &buf, w.FormDataContentType(), nil)
}

type menuItemRequest struct {
	Name      string `json:"name"`
	Price     string `json:"price"`
	Category  string `json:"category"`
	Available bool   `json:"available"`
}

func (c *Client) UpdateMenuItem(ctx context.Context, item domain.MenuItem) error {
	path := fmt.Sprintf("/api/menu/%d", item.ID)
	return c.sendJSON(ctx, http.MethodPut, path, menuItemRequest{
		Name:      item.Name,
		Price:     item.Price.String(),
		Category:  item.Category,
		Available: bool(item.Available),
	})
}

func (c *Client) ToggleMenuItem(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/menu/toggle/%d", id), nil, "", nil)
}

func (c *Client) DeleteMenuItem(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/menu/%d", id), nil, "", nil)
}

type importRequest struct {
	Template string `json:"template"`
}

func (c *Client) ImportTemplate(ctx context.Context, template string) error {
	return c.postJSON(ctx, "/api/menu/import", importRequest{Template: template})
}
