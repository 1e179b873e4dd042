// SPDX-License-Identifier: GPL-2.0-or-later

package cvars

import (
	"github.com/tmackgit/GameDev-sub001/cvar"
)

var (
	BSPMaxCandidates         *cvar.Cvar
	BSPSplitPenalty          *cvar.Cvar
	CollisionEpsilon         *cvar.Cvar
	CollisionFloorNormal     *cvar.Cvar
	CollisionGroundProbe     *cvar.Cvar
	CollisionSlideIterations *cvar.Cvar
	Developer                *cvar.Cvar
	HostFrameRate            *cvar.Cvar
	ServerGravity            *cvar.Cvar
	ServerMaxVelocity        *cvar.Cvar
	ServerNoStep             *cvar.Cvar
	ServerStepSize           *cvar.Cvar
)

func init() {
	BSPMaxCandidates = cvar.MustRegister("bsp_maxcandidates", "0", cvar.NONE) // 0: try every polygon
	BSPSplitPenalty = cvar.MustRegister("bsp_splitpenalty", "8", cvar.NONE)
	CollisionEpsilon = cvar.MustRegister("col_epsilon", "0.03125", cvar.NONE)
	CollisionFloorNormal = cvar.MustRegister("col_floornormal", "0.7", cvar.NONE)
	CollisionGroundProbe = cvar.MustRegister("col_groundprobe", "2", cvar.NONE)
	CollisionSlideIterations = cvar.MustRegister("col_slideiterations", "2", cvar.NONE)
	Developer = cvar.MustRegister("developer", "0", cvar.NONE)
	HostFrameRate = cvar.MustRegister("host_framerate", "0.02", cvar.NONE)
	ServerGravity = cvar.MustRegister("sv_gravity", "800", cvar.NOTIFY)
	ServerMaxVelocity = cvar.MustRegister("sv_maxvelocity", "2000", cvar.NONE)
	ServerNoStep = cvar.MustRegister("sv_nostep", "0", cvar.NONE)
	ServerStepSize = cvar.MustRegister("sv_stepsize", "18", cvar.NONE)
}
