package catalog

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cargoledger/internal/domain"
)

var _ cargoRepo = &cargoRepoMock{}

type cargoRepoMock struct {
	CreateFunc  func(ctx context.Context, c *domain.Cargo) (*domain.Cargo, error)
	GetByIDFunc func(ctx context.Context, id primitive.ObjectID) (*domain.Cargo, error)
	ListFunc    func(ctx context.Context, filter domain.CargoFilter) ([]*domain.Cargo, error)
	UpdateFunc  func(ctx context.Context, id primitive.ObjectID, params domain.CargoUpdateParams) (*domain.Cargo, error)
	DeleteFunc  func(ctx context.Context, id primitive.ObjectID) error

	calls struct {
		Create []struct {
			Cargo *domain.Cargo
		}
		Update []struct {
			ID     primitive.ObjectID
			Params domain.CargoUpdateParams
		}
		Delete []struct {
			ID primitive.ObjectID
		}
	}
	lock sync.RWMutex
}

func (mock *cargoRepoMock) Create(ctx context.Context, c *domain.Cargo) (*domain.Cargo, error) {
	if mock.CreateFunc == nil {
		panic("cargoRepoMock.CreateFunc: method is nil but cargoRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		Cargo *domain.Cargo
	}{Cargo: c})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, c)
}

func (mock *cargoRepoMock) CreateCalls() []struct {
	Cargo *domain.Cargo
} {
	mock.lock.RLock()
	calls := mock.calls.Create
	mock.lock.RUnlock()
	return calls
}

func (mock *cargoRepoMock) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Cargo, error) {
	if mock.GetByIDFunc == nil {
		panic("cargoRepoMock.GetByIDFunc: method is nil but cargoRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

func (mock *cargoRepoMock) List(ctx context.Context, filter domain.CargoFilter) ([]*domain.Cargo, error) {
	if mock.ListFunc == nil {
		panic("cargoRepoMock.ListFunc: method is nil but cargoRepo.List was just called")
	}
	return mock.ListFunc(ctx, filter)
}

func (mock *cargoRepoMock) Update(ctx context.Context, id primitive.ObjectID, params domain.CargoUpdateParams) (*domain.Cargo, error) {
	if mock.UpdateFunc == nil {
		panic("cargoRepoMock.UpdateFunc: method is nil but cargoRepo.Update was just called")
	}
	mock.lock.Lock()
	mock.calls.Update = append(mock.calls.Update, struct {
		ID     primitive.ObjectID
		Params domain.CargoUpdateParams
	}{ID: id, Params: params})
	mock.lock.Unlock()
	return mock.UpdateFunc(ctx, id, params)
}

func (mock *cargoRepoMock) UpdateCalls() []struct {
	ID     primitive.ObjectID
	Params domain.CargoUpdateParams
} {
	mock.lock.RLock()
	calls := mock.calls.Update
	mock.lock.RUnlock()
	return calls
}

func (mock *cargoRepoMock) Delete(ctx context.Context, id primitive.ObjectID) error {
	if mock.DeleteFunc == nil {
		panic("cargoRepoMock.DeleteFunc: method is nil but cargoRepo.Delete was just called")
	}
	mock.lock.Lock()
	mock.calls.Delete = append(mock.calls.Delete, struct {
		ID primitive.ObjectID
	}{ID: id})
	mock.lock.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *cargoRepoMock) DeleteCalls() []struct {
	ID primitive.ObjectID
} {
	mock.lock.RLock()
	calls := mock.calls.Delete
	mock.lock.RUnlock()
	return calls
}

var _ modelRepo = &modelRepoMock{}

type modelRepoMock struct {
	CreateFunc          func(ctx context.Context, m *domain.Model) (*domain.Model, error)
	GetByIDFunc         func(ctx context.Context, cargoID, modelID primitive.ObjectID) (*domain.Model, error)
	ListByCargoIDFunc   func(ctx context.Context, cargoID primitive.ObjectID) ([]domain.Model, error)
	UpdateFunc          func(ctx context.Context, modelID primitive.ObjectID, params domain.ModelUpdateParams) (*domain.Model, error)
	DeleteFunc          func(ctx context.Context, modelID primitive.ObjectID) error
	SpecValueExistsFunc func(ctx context.Context, cargoID primitive.ObjectID, specValue string, exclude primitive.ObjectID) (bool, error)

	calls struct {
		Create []struct {
			Model *domain.Model
		}
		Update []struct {
			ModelID primitive.ObjectID
			Params  domain.ModelUpdateParams
		}
		SpecValueExists []struct {
			CargoID   primitive.ObjectID
			SpecValue string
			Exclude   primitive.ObjectID
		}
	}
	lock sync.RWMutex
}

func (mock *modelRepoMock) Create(ctx context.Context, m *domain.Model) (*domain.Model, error) {
	if mock.CreateFunc == nil {
		panic("modelRepoMock.CreateFunc: method is nil but modelRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		Model *domain.Model
	}{Model: m})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, m)
}

func (mock *modelRepoMock) CreateCalls() []struct {
	Model *domain.Model
} {
	mock.lock.RLock()
	calls := mock.calls.Create
	mock.lock.RUnlock()
	return calls
}

func (mock *modelRepoMock) GetByID(ctx context.Context, cargoID, modelID primitive.ObjectID) (*domain.Model, error) {
	if mock.GetByIDFunc == nil {
		panic("modelRepoMock.GetByIDFunc: method is nil but modelRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, cargoID, modelID)
}

func (mock *modelRepoMock) ListByCargoID(ctx context.Context, cargoID primitive.ObjectID) ([]domain.Model, error) {
	if mock.ListByCargoIDFunc == nil {
		panic("modelRepoMock.ListByCargoIDFunc: method is nil but modelRepo.ListByCargoID was just called")
	}
	return mock.ListByCargoIDFunc(ctx, cargoID)
}

func (mock *modelRepoMock) Update(ctx context.Context, modelID primitive.ObjectID, params domain.ModelUpdateParams) (*domain.Model, error) {
	if mock.UpdateFunc == nil {
		panic("modelRepoMock.UpdateFunc: method is nil but modelRepo.Update was just called")
	}
	mock.lock.Lock()
	mock.calls.Update = append(mock.calls.Update, struct {
		ModelID primitive.ObjectID
		Params  domain.ModelUpdateParams
	}{ModelID: modelID, Params: params})
	mock.lock.Unlock()
	return mock.UpdateFunc(ctx, modelID, params)
}

func (mock *modelRepoMock) UpdateCalls() []struct {
	ModelID primitive.ObjectID
	Params  domain.ModelUpdateParams
} {
	mock.lock.RLock()
	calls := mock.calls.Update
	mock.lock.RUnlock()
	return calls
}

func (mock *modelRepoMock) Delete(ctx context.Context, modelID primitive.ObjectID) error {
	if mock.DeleteFunc == nil {
		panic("modelRepoMock.DeleteFunc: method is nil but modelRepo.Delete was just called")
	}
	return mock.DeleteFunc(ctx, modelID)
}

func (mock *modelRepoMock) SpecValueExists(ctx context.Context, cargoID primitive.ObjectID, specValue string, exclude primitive.ObjectID) (bool, error) {
	if mock.SpecValueExistsFunc == nil {
		panic("modelRepoMock.SpecValueExistsFunc: method is nil but modelRepo.SpecValueExists was just called")
	}
	mock.lock.Lock()
	mock.calls.SpecValueExists = append(mock.calls.SpecValueExists, struct {
		CargoID   primitive.ObjectID
		SpecValue string
		Exclude   primitive.ObjectID
	}{CargoID: cargoID, SpecValue: specValue, Exclude: exclude})
	mock.lock.Unlock()
	return mock.SpecValueExistsFunc(ctx, cargoID, specValue, exclude)
}

func (mock *modelRepoMock) SpecValueExistsCalls() []struct {
	CargoID   primitive.ObjectID
	SpecValue string
	Exclude   primitive.ObjectID
} {
	mock.lock.RLock()
	calls := mock.calls.SpecValueExists
	mock.lock.RUnlock()
	return calls
}

var _ RefRepo = &refRepoMock{}

type refRepoMock struct {
	CreateFunc  func(ctx context.Context, entity *domain.RefEntity) (*domain.RefEntity, error)
	GetByIDFunc func(ctx context.Context, id primitive.ObjectID) (*domain.RefEntity, error)
	ListFunc    func(ctx context.Context) ([]*domain.RefEntity, error)
	UpdateFunc  func(ctx context.Context, id primitive.ObjectID, params domain.RefUpdateParams) (*domain.RefEntity, error)
	DeleteFunc  func(ctx context.Context, id primitive.ObjectID) error

	calls struct {
		Create []struct {
			Entity *domain.RefEntity
		}
	}
	lock sync.RWMutex
}

func (mock *refRepoMock) Create(ctx context.Context, entity *domain.RefEntity) (*domain.RefEntity, error) {
	if mock.CreateFunc == nil {
		panic("refRepoMock.CreateFunc: method is nil but refRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		Entity *domain.RefEntity
	}{Entity: entity})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, entity)
}

func (mock *refRepoMock) CreateCalls() []struct {
	Entity *domain.RefEntity
} {
	mock.lock.RLock()
	calls := mock.calls.Create
	mock.lock.RUnlock()
	return calls
}

func (mock *refRepoMock) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.RefEntity, error) {
	if mock.GetByIDFunc == nil {
		panic("refRepoMock.GetByIDFunc: method is nil but refRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

func (mock *refRepoMock) List(ctx context.Context) ([]*domain.RefEntity, error) {
	if mock.ListFunc == nil {
		panic("refRepoMock.ListFunc: method is nil but refRepo.List was just called")
	}
	return mock.ListFunc(ctx)
}

func (mock *refRepoMock) Update(ctx context.Context, id primitive.ObjectID, params domain.RefUpdateParams) (*domain.RefEntity, error) {
	if mock.UpdateFunc == nil {
		panic("refRepoMock.UpdateFunc: method is nil but refRepo.Update was just called")
	}
	return mock.UpdateFunc(ctx, id, params)
}

func (mock *refRepoMock) Delete(ctx context.Context, id primitive.ObjectID) error {
	if mock.DeleteFunc == nil {
		panic("refRepoMock.DeleteFunc: method is nil but refRepo.Delete was just called")
	}
	return mock.DeleteFunc(ctx, id)
}
