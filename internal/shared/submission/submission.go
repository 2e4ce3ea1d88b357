// Package submission はフォーム送信の二重実行を防ぐトークンガードを提供します。
//
// フォームを描画するたびに新しいトークン（UUID）を発行し、送信時に Guard.Submit がトークンを
// idle → submitting へ原子的に遷移させてからリモート呼び出しを1回だけ実行します。
//
//   - 成功: トークンは done のまま保持され、結果ダイアログが閉じられる (Dismiss) まで再送信を拒否します。
//   - 失敗: トークンは idle に戻り、利用者は同じフォームから再送信できます。
//   - 送信中・完了済みトークンへの再送信: 呼び出しを行わず、保存済みまたは処理中の結果を返します。
package submission

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"empresas_admin/internal/platform/logger"
	"empresas_admin/internal/shared/apperror"
)

// DefaultSuccessMessage はサーバーが mensaje を返さなかった場合の成功メッセージです。
const DefaultSuccessMessage = "Operacion realizada correctamente"

// ErrMissingToken はフォームトークンなしで送信された場合に返されます。
var ErrMissingToken = errors.New("missing form token")

// State はトークンの状態です。
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateDone       State = "done"
)

// Outcome は1回の送信結果で、結果ダイアログに表示されます。
type Outcome struct {
	Form    string `json:"form"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Store はトークンの状態を保持します。実装は並行利用に対して安全でなければなりません。
type Store interface {
	// Acquire は idle のトークンを submitting にし、遷移できた場合に true を返します。
	Acquire(ctx context.Context, token string) (bool, error)
	// Finish は submitting のトークンを done にし、結果を保存します。
	Finish(ctx context.Context, token string, out Outcome) error
	// Lookup は現在の状態と、done の場合は保存済みの結果を返します。
	Lookup(ctx context.Context, token string) (State, *Outcome, error)
	// Release はトークンを idle に戻します。
	Release(ctx context.Context, token string) error
}

// Recorder は送信結果のメトリクスを記録します。
type Recorder interface {
	ObserveSubmission(form, outcome string)
}

// Call はリモートAPIを呼び出し、サーバーの mensaje を返す関数です。
type Call func(ctx context.Context) (string, error)

// Result は Submit の結果です。
type Result struct {
	Outcome Outcome
	// Duplicate は呼び出しを行わなかった再送信であることを示します。
	Duplicate bool
	// Pending は最初の送信がまだ処理中であることを示します（Duplicate の場合のみ）。
	Pending bool
}

// Guard はトークン単位で送信を直列化します。
type Guard struct {
	store    Store
	recorder Recorder
}

// NewGuard は Guard を作成します。recorder は nil でも構いません。
func NewGuard(store Store, recorder Recorder) *Guard {
	return &Guard{store: store, recorder: recorder}
}

// NewToken は新しいフォームトークンを発行します。
func (g *Guard) NewToken() string {
	return uuid.NewString()
}

// Submit はトークンを取得できた場合に限り call を1回実行します。
// call の失敗はエラーではなく失敗の Outcome として返し、メッセージは
// サーバーの mensaje、なければ fallback です。error はストア障害など送信自体ができなかった場合のみです。
func (g *Guard) Submit(ctx context.Context, form, token string, call Call, fallback string) (Result, error) {
	if token == "" {
		return Result{}, ErrMissingToken
	}
	log := logger.FromContext(ctx).With(zap.String("form", form), zap.String("token", token))

	ok, err := g.store.Acquire(ctx, token)
	if err != nil {
		return Result{}, fmt.Errorf("acquire form token: %w", err)
	}
	if !ok {
		g.observe(form, "duplicate")
		state, out, err := g.store.Lookup(ctx, token)
		if err != nil {
			return Result{}, fmt.Errorf("lookup form token: %w", err)
		}
		log.Info("duplicate submission ignored", zap.String("state", string(state)))
		res := Result{Duplicate: true, Pending: state != StateDone}
		if out != nil {
			res.Outcome = *out
		} else {
			res.Outcome = Outcome{Form: form}
		}
		return res, nil
	}

	msg, callErr := call(ctx)

	// 利用者が接続を切っても状態遷移は完了させる
	bg := context.WithoutCancel(ctx)

	if callErr != nil {
		log.Warn("submission failed", zap.Error(callErr))
		g.observe(form, "error")
		if err := g.store.Release(bg, token); err != nil {
			log.Error("failed to release form token", zap.Error(err))
		}
		return Result{Outcome: Outcome{Form: form, Message: apperror.Message(callErr, fallback)}}, nil
	}

	if msg == "" {
		msg = DefaultSuccessMessage
	}
	out := Outcome{Form: form, Success: true, Message: msg}
	g.observe(form, "success")
	if err := g.store.Finish(bg, token, out); err != nil {
		// 呼び出しは成功しているので結果は返す
		log.Error("failed to store submission outcome", zap.Error(err))
	}
	log.Info("submission succeeded")
	return Result{Outcome: out}, nil
}

// Lookup は保存済みの状態と結果を返します。
func (g *Guard) Lookup(ctx context.Context, token string) (State, *Outcome, error) {
	if token == "" {
		return StateIdle, nil, ErrMissingToken
	}
	return g.store.Lookup(ctx, token)
}

// Dismiss は成功ダイアログが閉じられたときにトークンを解放します。
// 処理中のトークンは解放しません。
func (g *Guard) Dismiss(ctx context.Context, token string) error {
	if token == "" {
		return ErrMissingToken
	}
	state, _, err := g.store.Lookup(ctx, token)
	if err != nil {
		return err
	}
	if state == StateSubmitting {
		return nil
	}
	return g.store.Release(ctx, token)
}

// RecordInvalid はクライアント側検証で送信が止められたことを記録します。
func (g *Guard) RecordInvalid(form string) {
	g.observe(form, "invalid")
}

func (g *Guard) observe(form, outcome string) {
	if g.recorder != nil {
		g.recorder.ObserveSubmission(form, outcome)
	}
}
