package bench

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/idudko/login-checker/internal/model"
)

// HostInfo describes the current machine. Fields that cannot be read are
// left empty.
func HostInfo(ctx context.Context) model.Host {
	var h model.Host

	if info, err := host.InfoWithContext(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to read host info")
	} else {
		h.OS = info.OS
		h.Platform = info.Platform + " " + info.PlatformVersion
	}

	if infos, err := cpu.InfoWithContext(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to read cpu info")
	} else if len(infos) > 0 {
		h.CPUModel = infos[0].ModelName
	}

	if n, err := cpu.CountsWithContext(ctx, true); err != nil {
		log.Warn().Err(err).Msg("failed to read cpu count")
	} else {
		h.LogicalCPUs = n
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to read memory info")
	} else {
		h.TotalMemory = vm.Total
	}

	return h
}
