// Package usecase はempresasフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"empresas_admin/internal/feature/empresas/domain"
	"empresas_admin/internal/feature/empresas/domain/entity"
	"empresas_admin/internal/platform/logger"
)

// EmpresaRepository はリモートAPIの会社リソースを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type EmpresaRepository interface {
	List(ctx context.Context) ([]entity.Empresa, error)
	ListByMinFacturacion(ctx context.Context, min decimal.Decimal) ([]entity.Empresa, error)
	Get(ctx context.Context, id int64) (*entity.Empresa, error)
	Create(ctx context.Context, e entity.Empresa) (string, error)
	Update(ctx context.Context, e entity.Empresa) (string, error)
	Delete(ctx context.Context, id int64) (string, error)
}

// Snapshot は一覧画面の最後の取得結果です。
// Filtro は絞り込み条件（最低売上）で、全件一覧では空です。
type Snapshot struct {
	Filtro   string           `json:"filtro"`
	Empresas []entity.Empresa `json:"empresas"`
}

// SnapshotStore は一覧スナップショットをビューIDで保持します。
type SnapshotStore interface {
	Save(ctx context.Context, s Snapshot) (string, error)
	Load(ctx context.Context, id string) (Snapshot, bool, error)
	// Update は保存済みのスナップショットを排他的に書き換えます。存在しなければ false を返します。
	Update(ctx context.Context, id string, fn func(*Snapshot)) (bool, error)
	Delete(ctx context.Context, id string) error
}

// Listado は描画用の一覧で、VistaID は削除操作で参照されます。
type Listado struct {
	VistaID string
	Snapshot
}

// EmpresaUsecase は会社の作成・取得・一覧・更新・削除を提供します。
type EmpresaUsecase struct {
	repo      EmpresaRepository
	snapshots SnapshotStore
	now       func() time.Time
}

// NewEmpresaUsecase は EmpresaUsecase を生成します。
func NewEmpresaUsecase(repo EmpresaRepository, snapshots SnapshotStore) *EmpresaUsecase {
	return &EmpresaUsecase{repo: repo, snapshots: snapshots, now: time.Now}
}

// Today は検証に使う今日の日付です。
func (u *EmpresaUsecase) Today() time.Time {
	return u.now()
}

// Get は更新フォームの初期値として1社を取得します。
func (u *EmpresaUsecase) Get(ctx context.Context, id int64) (*entity.Empresa, error) {
	return u.repo.Get(ctx, id)
}

// Create は検証済みの会社を作成し、サーバーの mensaje を返します。
func (u *EmpresaUsecase) Create(ctx context.Context, e entity.Empresa) (string, error) {
	if errs := e.Validate(u.now()); !errs.Valid() {
		return "", domain.ErrInvalidEmpresa
	}
	return u.repo.Create(ctx, e)
}

// Update は検証済みの会社を更新し、サーバーの mensaje を返します。
func (u *EmpresaUsecase) Update(ctx context.Context, e entity.Empresa) (string, error) {
	if errs := e.Validate(u.now()); !errs.Valid() {
		return "", domain.ErrInvalidEmpresa
	}
	return u.repo.Update(ctx, e)
}

// List は全社一覧を返します。vistaID のスナップショットが残っていればそれを使い、
// なければ取得して新しいスナップショットを保存します。
func (u *EmpresaUsecase) List(ctx context.Context, vistaID string) (Listado, error) {
	return u.open(ctx, vistaID, "", u.repo.List)
}

// ListByMinFacturacion は売上が min 以上の会社一覧を返します。
func (u *EmpresaUsecase) ListByMinFacturacion(ctx context.Context, min decimal.Decimal, vistaID string) (Listado, error) {
	return u.open(ctx, vistaID, min.String(), func(ctx context.Context) ([]entity.Empresa, error) {
		return u.repo.ListByMinFacturacion(ctx, min)
	})
}

func (u *EmpresaUsecase) open(ctx context.Context, vistaID, filtro string, fetch func(context.Context) ([]entity.Empresa, error)) (Listado, error) {
	if vistaID != "" {
		snap, ok, err := u.snapshots.Load(ctx, vistaID)
		if err != nil {
			logger.FromContext(ctx).Warn("failed to load empresa snapshot", zap.String("vista", vistaID), zap.Error(err))
		}
		if ok && snap.Filtro == filtro {
			return Listado{VistaID: vistaID, Snapshot: snap}, nil
		}
	}

	rows, err := fetch(ctx)
	if err != nil {
		return Listado{}, err
	}
	snap := Snapshot{Filtro: filtro, Empresas: rows}
	id, err := u.snapshots.Save(ctx, snap)
	if err != nil {
		// スナップショットなしでも一覧は表示できる
		logger.FromContext(ctx).Warn("failed to save empresa snapshot", zap.Error(err))
	}
	return Listado{VistaID: id, Snapshot: snap}, nil
}

// Delete はリモートで会社を削除し、成功時はスナップショットから対象行だけを取り除きます。
// 失敗時はスナップショットを破棄してエラーを返します。
// スナップショットが期限切れの場合は何もせず、次の表示で再取得されます。
func (u *EmpresaUsecase) Delete(ctx context.Context, vistaID string, id int64) (string, error) {
	msg, err := u.repo.Delete(ctx, id)
	if err != nil {
		if vistaID != "" {
			if derr := u.snapshots.Delete(ctx, vistaID); derr != nil {
				logger.FromContext(ctx).Warn("failed to clear empresa snapshot", zap.Error(derr))
			}
		}
		return "", err
	}
	if vistaID == "" {
		return msg, nil
	}

	// 以降の失敗は一覧の再取得で回復できるため記録のみ
	log := logger.FromContext(ctx).With(zap.String("vista", vistaID))
	ok, err := u.snapshots.Update(ctx, vistaID, func(s *Snapshot) {
		s.Empresas = removeEmpresa(s.Empresas, id)
	})
	if err != nil {
		log.Warn("failed to update empresa snapshot", zap.Error(err))
		if derr := u.snapshots.Delete(ctx, vistaID); derr != nil {
			log.Warn("failed to clear empresa snapshot", zap.Error(derr))
		}
		return msg, nil
	}
	if !ok {
		log.Info("empresa snapshot unavailable after delete")
	}
	return msg, nil
}

func removeEmpresa(rows []entity.Empresa, id int64) []entity.Empresa {
	out := make([]entity.Empresa, 0, len(rows))
	for _, r := range rows {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}
