package port

import "github.com/lni/dragonboat/v4/logger"

var plog = logger.GetLogger("port")
