package modules

import (
	"github.com/ludobot/ludo/modules/plugins"
)

var (
	pluginCache         map[string]*Plugin
	extendedPluginCache map[string]*ExtendedPlugin

	PluginList = []Plugin{
		&plugins.Ping{},
	}

	PluginExtendedList = []ExtendedPlugin{
		&plugins.GameRoles{},
	}
)
