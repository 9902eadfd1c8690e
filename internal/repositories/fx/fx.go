package fx

import (
	"github.com/content-composer/linkedin-autopilot/internal/repositories/asset"
	"github.com/content-composer/linkedin-autopilot/internal/repositories/post"
	"github.com/content-composer/linkedin-autopilot/internal/repositories/scheduledpost"
	"go.uber.org/fx"
)

var Module = fx.Options(
	post.Module,
	scheduledpost.Module,
	asset.Module,
)
