package app

import (
	"github.com/vk/memscope/internal/registry"
	"github.com/vk/memscope/modules/configdump"
	"github.com/vk/memscope/modules/imageinfo"
	"github.com/vk/memscope/modules/imagestat"
	"github.com/vk/memscope/modules/singlelocation"
)

// coreModules is the definitive list of all modules that are compiled into
// the memscope binary.
var coreModules = []registry.Module{
	&singlelocation.Module{},
	&imagestat.Module{},
	&imageinfo.Module{},
	&configdump.Module{},
}
