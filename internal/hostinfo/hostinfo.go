package hostinfo

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/shirou/gopsutil/v4/host"
)

// Info is the host-level slice of the Info tab: everything that comes from
// the device itself rather than from the daemon.
type Info struct {
	Kernel    string
	Platform  string
	Arch      string
	SELinux   string
	UptimeSec uint64
}

type kernelResult struct {
	kernel   string
	platform string
	arch     string
	uptime   uint64
	err      error
}

type selinuxResult struct {
	mode string
}

// Probe collects host facts concurrently. SELinux state is best-effort and
// reports "Unknown" when neither the sysfs node nor getenforce answers.
func Probe(ctx context.Context) (Info, error) {
	kernelCh := make(chan kernelResult, 1)
	selinuxCh := make(chan selinuxResult, 1)

	var wg sync.WaitGroup
	wg.Add(2)

	go fetchKernel(ctx, &wg, kernelCh)
	go fetchSELinux(ctx, &wg, selinuxCh)

	wg.Wait()

	kRes := <-kernelCh
	sRes := <-selinuxCh

	if kRes.err != nil {
		return Info{}, kRes.err
	}

	return Info{
		Kernel:    kRes.kernel,
		Platform:  kRes.platform,
		Arch:      kRes.arch,
		SELinux:   sRes.mode,
		UptimeSec: kRes.uptime,
	}, nil
}

func fetchKernel(ctx context.Context, wg *sync.WaitGroup, ch chan kernelResult) {
	defer wg.Done()
	defer close(ch)

	info, err := host.InfoWithContext(ctx)
	if err != nil {
		ch <- kernelResult{err: err}
		return
	}
	ch <- kernelResult{
		kernel:   info.KernelVersion,
		platform: info.Platform,
		arch:     info.KernelArch,
		uptime:   info.Uptime,
	}
}

func fetchSELinux(ctx context.Context, wg *sync.WaitGroup, ch chan selinuxResult) {
	defer wg.Done()
	defer close(ch)

	if raw, err := os.ReadFile("/sys/fs/selinux/enforce"); err == nil {
		ch <- selinuxResult{mode: ParseEnforce(raw)}
		return
	}

	out, err := exec.CommandContext(ctx, "getenforce").Output()
	if err != nil {
		ch <- selinuxResult{mode: "Unknown"}
		return
	}
	mode := strings.TrimSpace(string(out))
	if mode == "" {
		mode = "Unknown"
	}
	ch <- selinuxResult{mode: mode}
}

// ParseEnforce maps the sysfs enforce flag to the getenforce vocabulary.
func ParseEnforce(raw []byte) string {
	switch strings.TrimSpace(string(raw)) {
	case "1":
		return "Enforcing"
	case "0":
		return "Permissive"
	default:
		return "Unknown"
	}
}
