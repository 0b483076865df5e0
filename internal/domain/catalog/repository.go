package catalog

import "context"

// ListFilter is shared by the three catalog listings.
type ListFilter struct {
	Active   *bool
	Search   string
	ClientID *uint
	Page     int
	PageSize int
	Sort     string
}

// ClientRepository returns a not-found AppError from GetByID/GetByCode on a miss.
type ClientRepository interface {
	Create(ctx context.Context, client *Client) error
	Update(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Client, error)
	GetByCode(ctx context.Context, code string) (*Client, error)
	ExistsByCode(ctx context.Context, code string, excludeID uint) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*Client, int64, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Project, error)
	GetByCode(ctx context.Context, code string) (*Project, error)
	ExistsByCode(ctx context.Context, code string, excludeID uint) (bool, error)
	ExistsByClientAndName(ctx context.Context, clientID uint, name string, excludeID uint) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*Project, int64, error)
}

type ServiceTypeRepository interface {
	Create(ctx context.Context, serviceType *ServiceType) error
	Update(ctx context.Context, serviceType *ServiceType) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*ServiceType, error)
	GetByNomenclature(ctx context.Context, nomenclature string) (*ServiceType, error)
	ExistsByNomenclature(ctx context.Context, nomenclature string, excludeID uint) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*ServiceType, int64, error)
}
