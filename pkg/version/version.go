package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

// Valores padrão (sobrescritos por ldflags ou por build info)
var (
	Version   = "0.0.0-dev"
	Commit    = ""
	BuildTime = ""
)

// ReleasesURL aponta para a última release publicada (endpoint no formato
// GitHub releases/latest). Vazio desliga a verificação; definido via
// -ldflags "-X .../pkg/version.ReleasesURL=...".
var ReleasesURL = ""

const installHint = "go install github.com/diillson/supply-kpi-dashboard-go/cmd/kpi-dashboard@latest"

// populateFromBuildInfo preenche Commit/BuildTime/Version a partir do build info
// quando o binário não foi compilado com ldflags.
func populateFromBuildInfo(bi *debug.BuildInfo) {
	if bi == nil || (Version != "" && Version != "0.0.0-dev") {
		return
	}

	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}

	if rev := settings["vcs.revision"]; Commit == "" && len(rev) >= 7 {
		Commit = rev[:7]
	}
	if t := settings["vcs.time"]; BuildTime == "" && t != "" {
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
		}
	}

	// go install ...@vX.Y.Z grava a versão no módulo principal
	if v := strings.TrimPrefix(bi.Main.Version, "v"); v != "" && v != "(devel)" {
		Version = v
		if strings.EqualFold(settings["vcs.modified"], "true") {
			Version += "-dirty"
		}
	}
}

func init() {
	bi, _ := debug.ReadBuildInfo()
	populateFromBuildInfo(bi)
}

// latestRelease busca o tag_name da última release em url.
func latestRelease(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release check returned %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}
	return strings.TrimPrefix(release.TagName, "v"), nil
}

// newer compara versões x.y.z numericamente; sufixos (-rc1, -dirty) são ignorados.
func newer(latest, current string) bool {
	parse := func(v string) [3]int {
		var out [3]int
		v, _, _ = strings.Cut(v, "-")
		for i, p := range strings.SplitN(v, ".", 3) {
			n, _ := strconv.Atoi(p)
			out[i] = n
		}
		return out
	}
	l, c := parse(latest), parse(current)
	for i := range l {
		if l[i] != c[i] {
			return l[i] > c[i]
		}
	}
	return false
}

// CheckLatestVersion avisa quando existe uma release mais nova. Falhas são silenciosas.
func CheckLatestVersion(ctx context.Context, currentVersion string) {
	// Versões dev não são verificadas
	if ReleasesURL == "" || strings.HasSuffix(currentVersion, "-dev") {
		return
	}

	latest, err := latestRelease(ctx, &http.Client{Timeout: 3 * time.Second}, ReleasesURL)
	if err != nil || !newer(latest, currentVersion) {
		return
	}
	pterm.Warning.Println(fmt.Sprintf("A new version of KPI Dashboard is available: %s", latest))
	pterm.Info.Println("Please update using: " + installHint)
}

// FormatVersion retorna a versão formatada com commit e build time.
// Ex.: "1.2.3 (commit: abc1234, built at: 2025-10-23T10:20:30Z)"
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = "0.0.0-dev"
	}

	switch {
	case Commit == "" && BuildTime == "":
		return fmt.Sprintf("%s (development)", ver)
	case Commit == "":
		return fmt.Sprintf("%s (built at: %s)", ver, BuildTime)
	case BuildTime != "":
		return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, Commit, BuildTime)
	default:
		return fmt.Sprintf("%s (commit: %s)", ver, Commit)
	}
}
