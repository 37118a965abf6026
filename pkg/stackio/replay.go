package stackio

import (
	"context"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/scenestack/scenestack/pkg/errors"
	"github.com/scenestack/scenestack/pkg/observability"
	"github.com/scenestack/scenestack/pkg/scene"
)

// Replay applies placements to host with absolute moves, in document order.
// Nothing is stacked or solved: each object is moved to exactly the
// translation the file records for it. The first host failure aborts the
// replay; objects moved before the failure stay moved.
func Replay(ctx context.Context, host scene.Host, f *File) (err error) {
	total := 0
	for _, st := range f.Stacks {
		total += len(st.Objects)
	}

	start := time.Now()
	observability.Replay().OnReplayStart(ctx, total)
	defer func() {
		observability.Replay().OnReplayComplete(ctx, total, time.Since(start), err)
	}()

	for _, st := range f.Stacks {
		for _, o := range st.Objects {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			pos := mgl64.Vec3{o.TX, o.TY, o.TZ}
			if err := host.TranslateAbsolute(o.Name, pos); err != nil {
				return errors.Wrap(errors.ErrCodeHostQuery, err, "replay %q", o.Name)
			}
			observability.Replay().OnObjectMoved(ctx, o.Name)
		}
	}
	return nil
}
