package share

import (
	"fmt"
	"html"
	"strings"
	"text/template"

	"github.com/coachtools/playctl/internal/playbook"
)

// RedirectorHTML renders the self-contained shareable document for pb.
// The payload is embedded as an inline constant, so the file keeps working
// indefinitely with no network access beyond opening the app URL. Its
// script runs the same symmetric handshake as the session package: ping
// every interval until acknowledged, give up on the timeout.
func (s *Service) RedirectorHTML(pb *playbook.Playbook) (string, error) {
	payload, err := s.Export(pb)
	if err != nil {
		return "", err
	}
	// text/template keeps the script constants verbatim. The payload is
	// base64url and the URL and timings come from validated config, so
	// the playbook name is the only value that needs HTML escaping.
	var sb strings.Builder
	err = redirectorTmpl.Execute(&sb, redirectorData{
		Name:           html.EscapeString(pb.Name),
		Payload:        payload,
		AppURL:         s.cfg.AppURL,
		PingIntervalMS: s.cfg.Handshake.PingIntervalMS,
		TimeoutMS:      s.cfg.Handshake.TimeoutMS,
	})
	if err != nil {
		return "", fmt.Errorf("share: render redirector: %w", err)
	}
	return sb.String(), nil
}

type redirectorData struct {
	Name           string
	Payload        string
	AppURL         string
	PingIntervalMS int
	TimeoutMS      int
}

var redirectorTmpl = template.Must(template.New("redirector").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Playbook: {{.Name}}</title>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: sans-serif; display: flex; flex-direction: column; align-items: center; justify-content: center; height: 100vh; margin: 0; background: #0f172a; color: white; text-align: center; padding: 20px; box-sizing: border-box; }
        .card { background: #1e293b; padding: 2rem; border-radius: 1rem; box-shadow: 0 10px 25px rgba(0,0,0,0.5); border: 1px solid #334155; max-width: 400px; width: 100%; }
        .loader { border: 4px solid #334155; border-top: 4px solid #3b82f6; border-radius: 50%; width: 40px; height: 40px; animation: spin 1s linear infinite; margin: 0 auto 20px; display: none; }
        @keyframes spin { 0% { transform: rotate(0deg); } 100% { transform: rotate(360deg); } }
        h2 { margin: 0 0 10px; color: #3b82f6; }
        p { color: #94a3b8; font-size: 0.9rem; line-height: 1.5; }
        .btn { display: inline-block; background: #3b82f6; color: white; padding: 12px 24px; border-radius: 6px; text-decoration: none; font-weight: bold; margin-top: 20px; cursor: pointer; border: none; transition: background 0.2s; font-size: 1rem; }
        .btn:hover { background: #2563eb; }
        .status { margin-top: 15px; font-size: 0.8rem; color: #64748b; font-style: italic; }
    </style>
</head>
<body>
    <div class="card">
        <div id="loader" class="loader"></div>
        <h2>"{{.Name}}"</h2>
        <p>This file contains your playbook data. Click the button below to open it in the Play Designer.</p>

        <button id="openBtn" class="btn" onclick="openAndShare()">Open Playbook</button>

        <div id="statusMsg" class="status">Click to load the app...</div>
    </div>

    <script>
        const PLAYBOOK_DATA = "{{.Payload}}";
        const PING_INTERVAL_MS = {{.PingIntervalMS}};
        const TIMEOUT_MS = {{.TimeoutMS}};
        let appWindow = null;
        let pingTimer = null;

        function stopPinging() {
            if (pingTimer !== null) {
                clearInterval(pingTimer);
                pingTimer = null;
            }
        }

        function openAndShare() {
            const btn = document.getElementById('openBtn');
            const status = document.getElementById('statusMsg');
            const loader = document.getElementById('loader');

            status.textContent = "Opening Play Designer...";
            btn.style.display = "none";
            loader.style.display = "block";

            appWindow = window.open("{{.AppURL}}", "_blank");

            // Both sides ping; whichever signal lands first starts the
            // data leg.
            pingTimer = setInterval(() => {
                if (appWindow) appWindow.postMessage("HANDSHAKE_READY", "*");
            }, PING_INTERVAL_MS);

            setTimeout(() => {
                if (pingTimer !== null) {
                    stopPinging();
                    loader.style.display = "none";
                    btn.style.display = "inline-block";
                    status.textContent = "No response from the app. Try again.";
                }
            }, TIMEOUT_MS);

            window.addEventListener("message", (event) => {
                if (!event.origin.includes("github.io") && !event.origin.includes("localhost")) return;

                if (event.data === "HANDSHAKE_READY") {
                    status.textContent = "Data transfer in progress...";
                    appWindow.postMessage({
                        type: "IMPORT_PLAYBOOK",
                        data: PLAYBOOK_DATA
                    }, "*");
                    stopPinging();

                    status.textContent = "Success! You can close this tab now.";
                    loader.style.display = "none";
                }
            });
        }
    </script>
</body>
</html>`))
