package viewer

import (
	"fmt"
	"path/filepath"

	"github.com/Faultbox/glowstage/internal/animation"
	"github.com/Faultbox/glowstage/internal/asset"
	"github.com/Faultbox/glowstage/internal/scene"
)

// modelLoader hands the result of a background load to the render loop.
type modelLoader struct {
	results    <-chan asset.Result
	controller *animation.Controller
	stage      *scene.Stage
	// setTitle, when set, is told the model name and animation mode once a
	// model is attached.
	setTitle func(string)
}

// poll checks for a finished load without blocking. It returns true once the
// result has been consumed, after which it is a no-op.
func (l *modelLoader) poll() bool {
	if l.results == nil {
		return true
	}

	select {
	case res, ok := <-l.results:
		l.results = nil
		switch {
		case !ok:
			// Closed without a result; treated like a failed load.
			l.controller.OnLoadFailed(asset.ErrAssetLoad)
		case res.Err != nil:
			l.controller.OnLoadFailed(res.Err)
		default:
			if l.controller.OnLoad(res.Asset) {
				l.stage.AttachModel(res.Asset.Model())
				if l.setTitle != nil {
					l.setTitle(windowTitle(res.Asset.Path, l.controller.Mode()))
				}
			}
		}
		return true
	default:
		return false
	}
}

func windowTitle(path string, mode animation.Mode) string {
	return fmt.Sprintf("glowstage - %s [%s]", filepath.Base(path), mode)
}
