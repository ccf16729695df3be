package movement

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cargoledger/internal/domain"
)

var _ modelRepo = &modelRepoMock{}

type modelRepoMock struct {
	GetForUpdateFunc   func(ctx context.Context, modelID primitive.ObjectID) (*domain.Model, error)
	AdjustQuantityFunc func(ctx context.Context, modelID primitive.ObjectID, delta int64) (int64, error)

	calls struct {
		GetForUpdate []struct {
			ModelID primitive.ObjectID
		}
		AdjustQuantity []struct {
			ModelID primitive.ObjectID
			Delta   int64
		}
	}
	lockGetForUpdate   sync.RWMutex
	lockAdjustQuantity sync.RWMutex
}

func (mock *modelRepoMock) GetForUpdate(ctx context.Context, modelID primitive.ObjectID) (*domain.Model, error) {
	if mock.GetForUpdateFunc == nil {
		panic("modelRepoMock.GetForUpdateFunc: method is nil but modelRepo.GetForUpdate was just called")
	}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, struct {
		ModelID primitive.ObjectID
	}{ModelID: modelID})
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, modelID)
}

func (mock *modelRepoMock) GetForUpdateCalls() []struct {
	ModelID primitive.ObjectID
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *modelRepoMock) AdjustQuantity(ctx context.Context, modelID primitive.ObjectID, delta int64) (int64, error) {
	if mock.AdjustQuantityFunc == nil {
		panic("modelRepoMock.AdjustQuantityFunc: method is nil but modelRepo.AdjustQuantity was just called")
	}
	mock.lockAdjustQuantity.Lock()
	mock.calls.AdjustQuantity = append(mock.calls.AdjustQuantity, struct {
		ModelID primitive.ObjectID
		Delta   int64
	}{ModelID: modelID, Delta: delta})
	mock.lockAdjustQuantity.Unlock()
	return mock.AdjustQuantityFunc(ctx, modelID, delta)
}

func (mock *modelRepoMock) AdjustQuantityCalls() []struct {
	ModelID primitive.ObjectID
	Delta   int64
} {
	mock.lockAdjustQuantity.RLock()
	calls := mock.calls.AdjustQuantity
	mock.lockAdjustQuantity.RUnlock()
	return calls
}

var _ recordRepo = &recordRepoMock{}

type recordRepoMock struct {
	CreateFunc        func(ctx context.Context, rec *domain.Record) (*domain.Record, error)
	GetByIDFunc       func(ctx context.Context, id primitive.ObjectID) (*domain.Record, error)
	GetForUpdateFunc  func(ctx context.Context, id primitive.ObjectID) (*domain.Record, error)
	ListFunc          func(ctx context.Context) ([]*domain.Record, error)
	MarkCommittedFunc func(ctx context.Context, id primitive.ObjectID) (*domain.Record, error)
	DeleteDraftFunc   func(ctx context.Context, id primitive.ObjectID) error

	calls struct {
		Create        []struct{ Rec *domain.Record }
		GetByID       []struct{ ID primitive.ObjectID }
		GetForUpdate  []struct{ ID primitive.ObjectID }
		List          []struct{}
		MarkCommitted []struct{ ID primitive.ObjectID }
		DeleteDraft   []struct{ ID primitive.ObjectID }
	}
	lock sync.RWMutex
}

func (mock *recordRepoMock) Create(ctx context.Context, rec *domain.Record) (*domain.Record, error) {
	if mock.CreateFunc == nil {
		panic("recordRepoMock.CreateFunc: method is nil but recordRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ Rec *domain.Record }{Rec: rec})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, rec)
}

func (mock *recordRepoMock) CreateCalls() []struct{ Rec *domain.Record } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *recordRepoMock) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Record, error) {
	if mock.GetByIDFunc == nil {
		panic("recordRepoMock.GetByIDFunc: method is nil but recordRepo.GetByID was just called")
	}
	mock.lock.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct{ ID primitive.ObjectID }{ID: id})
	mock.lock.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *recordRepoMock) GetForUpdate(ctx context.Context, id primitive.ObjectID) (*domain.Record, error) {
	if mock.GetForUpdateFunc == nil {
		panic("recordRepoMock.GetForUpdateFunc: method is nil but recordRepo.GetForUpdate was just called")
	}
	mock.lock.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, struct{ ID primitive.ObjectID }{ID: id})
	mock.lock.Unlock()
	return mock.GetForUpdateFunc(ctx, id)
}

func (mock *recordRepoMock) GetForUpdateCalls() []struct{ ID primitive.ObjectID } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetForUpdate
}

func (mock *recordRepoMock) List(ctx context.Context) ([]*domain.Record, error) {
	if mock.ListFunc == nil {
		panic("recordRepoMock.ListFunc: method is nil but recordRepo.List was just called")
	}
	mock.lock.Lock()
	mock.calls.List = append(mock.calls.List, struct{}{})
	mock.lock.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *recordRepoMock) MarkCommitted(ctx context.Context, id primitive.ObjectID) (*domain.Record, error) {
	if mock.MarkCommittedFunc == nil {
		panic("recordRepoMock.MarkCommittedFunc: method is nil but recordRepo.MarkCommitted was just called")
	}
	mock.lock.Lock()
	mock.calls.MarkCommitted = append(mock.calls.MarkCommitted, struct{ ID primitive.ObjectID }{ID: id})
	mock.lock.Unlock()
	return mock.MarkCommittedFunc(ctx, id)
}

func (mock *recordRepoMock) MarkCommittedCalls() []struct{ ID primitive.ObjectID } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.MarkCommitted
}

func (mock *recordRepoMock) DeleteDraft(ctx context.Context, id primitive.ObjectID) error {
	if mock.DeleteDraftFunc == nil {
		panic("recordRepoMock.DeleteDraftFunc: method is nil but recordRepo.DeleteDraft was just called")
	}
	mock.lock.Lock()
	mock.calls.DeleteDraft = append(mock.calls.DeleteDraft, struct{ ID primitive.ObjectID }{ID: id})
	mock.lock.Unlock()
	return mock.DeleteDraftFunc(ctx, id)
}

func (mock *recordRepoMock) DeleteDraftCalls() []struct{ ID primitive.ObjectID } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.DeleteDraft
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct{}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{}{})
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct{} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}
