package watcher_test

import (
	"context"
	"errors"
	"iter"
	"testing"
	"testing/synctest"
	"time"

	"go.trai.ch/forge/internal/adapters/watcher"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func expectAtomic(ws *mocks.MockWorkspace) {
	ws.EXPECT().Atomic(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()
}

func TestRefresher_Refresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	ws := mocks.NewMockWorkspace(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	expectAtomic(ws)

	api := &domain.Project{Name: "portal-api", Dir: "/ws/portal/portal-api"}
	svc := &domain.Project{Name: "portal-service", Dir: "/ws/portal/portal-service"}

	ws.EXPECT().ResolveModule("/ws/portal/portal-service/a.java").Return(svc, nil)
	ws.EXPECT().ResolveModule("/ws/portal/portal-service/b.java").Return(svc, nil)
	ws.EXPECT().ResolveModule("/ws/portal/portal-api/c.java").Return(api, nil)
	ws.EXPECT().ResolveModule("/tmp/outside").Return(nil, domain.ErrModuleNotFound)

	gomock.InOrder(
		ws.EXPECT().Refresh(gomock.Any(), api, domain.DepthInfinite).Return(domain.RefreshResult{}, nil),
		ws.EXPECT().Refresh(gomock.Any(), svc, domain.DepthInfinite).Return(domain.RefreshResult{Added: 1, Changed: 1}, nil),
	)
	logger.EXPECT().Info("refreshed portal-service: 1 added, 1 changed, 0 removed")

	r := watcher.NewRefresher(ws, logger, time.Millisecond)
	r.Refresh(context.Background(), []string{
		"/ws/portal/portal-service/a.java",
		"/ws/portal/portal-service/b.java",
		"/ws/portal/portal-api/c.java",
		"/tmp/outside",
	})
}

func TestRefresher_RefreshError(t *testing.T) {
	ctrl := gomock.NewController(t)
	ws := mocks.NewMockWorkspace(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	expectAtomic(ws)

	p := &domain.Project{Name: "portal", Dir: "/ws/portal"}
	ws.EXPECT().ResolveModule(gomock.Any()).Return(p, nil)
	ws.EXPECT().Refresh(gomock.Any(), p, domain.DepthInfinite).Return(domain.RefreshResult{}, errors.New("disk gone"))
	logger.EXPECT().Error(gomock.Any()).Times(1)

	watcher.NewRefresher(ws, logger, time.Millisecond).Refresh(context.Background(), []string{"/ws/portal/pom.xml"})
}

func TestRefresher_Run(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ws := mocks.NewMockWorkspace(ctrl)
		logger := mocks.NewMockLogger(ctrl)
		expectAtomic(ws)

		p := &domain.Project{Name: "portal", Dir: "/ws/portal"}
		ws.EXPECT().ResolveModule(gomock.Any()).Return(p, nil).Times(3)
		ws.EXPECT().Refresh(gomock.Any(), p, domain.DepthInfinite).Return(domain.RefreshResult{Removed: 1}, nil).Times(2)
		logger.EXPECT().Info(gomock.Any()).Times(2)

		events := make(chan ports.WatchEvent)
		seq := func(yield func(ports.WatchEvent) bool) {
			for e := range events {
				if !yield(e) {
					return
				}
			}
		}

		done := make(chan struct{})
		go func() {
			watcher.NewRefresher(ws, logger, 100*time.Millisecond).Run(t.Context(), iter.Seq[ports.WatchEvent](seq))
			close(done)
		}()

		events <- ports.WatchEvent{Path: "/ws/portal/a", Operation: ports.OpWrite}
		events <- ports.WatchEvent{Path: "/ws/portal/b", Operation: ports.OpCreate}
		time.Sleep(200 * time.Millisecond)
		synctest.Wait()

		// Still pending when the events end.
		events <- ports.WatchEvent{Path: "/ws/portal/c", Operation: ports.OpRemove}
		close(events)
		<-done
	})
}
