package di

import (
	"context"

	"go.uber.org/fx"

	"github.com/velora/velora-commerce-go/internal/websocket"
)

// WebsocketModule provides the realtime push hub
var WebsocketModule = fx.Module("websocket",
	fx.Provide(
		websocket.NewHub,
		websocket.NewHandler,
	),
	fx.Invoke(startHub),
)

func startHub(lc fx.Lifecycle, hub *websocket.Hub) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go hub.Run()
			return nil
		},
	})
}
