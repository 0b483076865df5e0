package catalog

import (
	"fmt"
	"strings"
	"time"
)

// Client is a customer whose code becomes the CLIENTE segment of a ticket code.
type Client struct {
	id        uint
	name      string
	code      string
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

func NewClient(name, code string) (*Client, error) {
	c := &Client{active: true}
	if err := c.Update(name, code); err != nil {
		return nil, err
	}
	c.createdAt = c.updatedAt
	return c, nil
}

func ReconstructClient(id uint, name, code string, active bool, createdAt, updatedAt time.Time) *Client {
	return &Client{
		id:        id,
		name:      name,
		code:      code,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (c *Client) ID() uint             { return c.id }
func (c *Client) Name() string         { return c.name }
func (c *Client) Code() string         { return c.code }
func (c *Client) IsActive() bool       { return c.active }
func (c *Client) CreatedAt() time.Time { return c.createdAt }
func (c *Client) UpdatedAt() time.Time { return c.updatedAt }

func (c *Client) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("client ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("client ID cannot be zero")
	}
	c.id = id
	return nil
}

// Update replaces name and code after normalizing them.
func (c *Client) Update(name, code string) error {
	name = strings.TrimSpace(name)
	code = NormalizeCode(code)
	if err := validateName("client name", name); err != nil {
		return err
	}
	if err := validateCode("client code", code, MaxClientCodeLen); err != nil {
		return err
	}
	c.name = name
	c.code = code
	c.updatedAt = now()
	return nil
}

func (c *Client) SetActive(active bool) {
	if c.active == active {
		return
	}
	c.active = active
	c.updatedAt = now()
}
