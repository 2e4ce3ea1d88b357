// Package usecase はproveedoresフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"empresas_admin/internal/feature/proveedores/domain"
	"empresas_admin/internal/feature/proveedores/domain/entity"
	"empresas_admin/internal/platform/logger"
)

// ProveedorRepository はリモートAPIの仕入先リソースを抽象化します。
type ProveedorRepository interface {
	List(ctx context.Context) ([]entity.Proveedor, error)
	ListByEmpresa(ctx context.Context, empresaID int64) ([]entity.Proveedor, error)
	Get(ctx context.Context, id int64) (*entity.Proveedor, error)
	Create(ctx context.Context, p entity.Proveedor) (string, error)
	Update(ctx context.Context, p entity.Proveedor) (string, error)
	Delete(ctx context.Context, id int64) (string, error)
}

// EmpresaDirectory は会社セレクタの選択肢を提供します。
type EmpresaDirectory interface {
	ListEmpresas(ctx context.Context) ([]entity.EmpresaRef, error)
}

// Snapshot は一覧画面の最後の取得結果です。Filtro は会社IDで、全件一覧では空です。
type Snapshot struct {
	Filtro      string             `json:"filtro"`
	Proveedores []entity.Proveedor `json:"proveedores"`
}

// SnapshotStore は一覧スナップショットをビューIDで保持します。
type SnapshotStore interface {
	Save(ctx context.Context, s Snapshot) (string, error)
	Load(ctx context.Context, id string) (Snapshot, bool, error)
	// Update は保存済みのスナップショットを排他的に書き換えます。存在しなければ false を返します。
	Update(ctx context.Context, id string, fn func(*Snapshot)) (bool, error)
	Delete(ctx context.Context, id string) error
}

// Listado は描画用の一覧です。
type Listado struct {
	VistaID string
	Snapshot
}

// ProveedorUsecase は仕入先の作成・取得・一覧・更新・削除を提供します。
type ProveedorUsecase struct {
	repo      ProveedorRepository
	empresas  EmpresaDirectory
	snapshots SnapshotStore
	now       func() time.Time
}

// NewProveedorUsecase は ProveedorUsecase を生成します。
func NewProveedorUsecase(repo ProveedorRepository, empresas EmpresaDirectory, snapshots SnapshotStore) *ProveedorUsecase {
	return &ProveedorUsecase{repo: repo, empresas: empresas, snapshots: snapshots, now: time.Now}
}

// Today は検証に使う今日の日付です。
func (u *ProveedorUsecase) Today() time.Time {
	return u.now()
}

// Empresas は会社セレクタの選択肢を返します。
func (u *ProveedorUsecase) Empresas(ctx context.Context) ([]entity.EmpresaRef, error) {
	return u.empresas.ListEmpresas(ctx)
}

// Get は更新フォームの初期値として1件取得します。
func (u *ProveedorUsecase) Get(ctx context.Context, id int64) (*entity.Proveedor, error) {
	return u.repo.Get(ctx, id)
}

// Create は検証済みの仕入先を作成し、サーバーの mensaje を返します。
func (u *ProveedorUsecase) Create(ctx context.Context, p entity.Proveedor) (string, error) {
	if errs := p.Validate(u.now()); !errs.Valid() {
		return "", domain.ErrInvalidProveedor
	}
	return u.repo.Create(ctx, p)
}

// Update は検証済みの仕入先を更新し、サーバーの mensaje を返します。
func (u *ProveedorUsecase) Update(ctx context.Context, p entity.Proveedor) (string, error) {
	if errs := p.Validate(u.now()); !errs.Valid() {
		return "", domain.ErrInvalidProveedor
	}
	return u.repo.Update(ctx, p)
}

// List は全仕入先の一覧を返します。
func (u *ProveedorUsecase) List(ctx context.Context, vistaID string) (Listado, error) {
	return u.open(ctx, vistaID, "", u.repo.List)
}

// ListByEmpresa は会社に所属する仕入先の一覧を返します。
func (u *ProveedorUsecase) ListByEmpresa(ctx context.Context, empresaID int64, vistaID string) (Listado, error) {
	if empresaID <= 0 {
		return Listado{}, domain.ErrInvalidEmpresaID
	}
	filtro := strconv.FormatInt(empresaID, 10)
	return u.open(ctx, vistaID, filtro, func(ctx context.Context) ([]entity.Proveedor, error) {
		return u.repo.ListByEmpresa(ctx, empresaID)
	})
}

func (u *ProveedorUsecase) open(ctx context.Context, vistaID, filtro string, fetch func(context.Context) ([]entity.Proveedor, error)) (Listado, error) {
	if vistaID != "" {
		snap, ok, err := u.snapshots.Load(ctx, vistaID)
		if err != nil {
			logger.FromContext(ctx).Warn("failed to load proveedor snapshot", zap.String("vista", vistaID), zap.Error(err))
		}
		if ok && snap.Filtro == filtro {
			return Listado{VistaID: vistaID, Snapshot: snap}, nil
		}
	}

	rows, err := fetch(ctx)
	if err != nil {
		return Listado{}, err
	}
	snap := Snapshot{Filtro: filtro, Proveedores: rows}
	id, err := u.snapshots.Save(ctx, snap)
	if err != nil {
		logger.FromContext(ctx).Warn("failed to save proveedor snapshot", zap.Error(err))
	}
	return Listado{VistaID: id, Snapshot: snap}, nil
}

// Delete はリモートで仕入先を削除し、成功時はスナップショットから対象行だけを取り除きます。
// 失敗時はスナップショットを破棄してエラーを返します。
func (u *ProveedorUsecase) Delete(ctx context.Context, vistaID string, id int64) (string, error) {
	log := logger.FromContext(ctx).With(zap.String("vista", vistaID))

	msg, err := u.repo.Delete(ctx, id)
	if err != nil {
		if vistaID != "" {
			if derr := u.snapshots.Delete(ctx, vistaID); derr != nil {
				log.Warn("failed to clear proveedor snapshot", zap.Error(derr))
			}
		}
		return "", err
	}
	if vistaID == "" {
		return msg, nil
	}

	ok, err := u.snapshots.Update(ctx, vistaID, func(s *Snapshot) {
		kept := make([]entity.Proveedor, 0, len(s.Proveedores))
		for _, p := range s.Proveedores {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		s.Proveedores = kept
	})
	if err != nil {
		log.Warn("failed to update proveedor snapshot", zap.Error(err))
		if derr := u.snapshots.Delete(ctx, vistaID); derr != nil {
			log.Warn("failed to clear proveedor snapshot", zap.Error(derr))
		}
		return msg, nil
	}
	if !ok {
		log.Info("proveedor snapshot unavailable after delete")
	}
	return msg, nil
}
