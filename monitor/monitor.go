package monitor

import (
	"crypto/subtle"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/amansgnr3001/studenthub/config"
)

func logsToken() string {
	return os.Getenv("LOGS_TOKEN")
}

// RegisterMonitorPage serves a small status page polling health and logs.
func RegisterMonitorPage(router *gin.Engine) {
	router.GET("/monitor", func(c *gin.Context) {
		page := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>StudentHub Monitor</title>
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body {
      background: #10101a;
      color: #e0e0e0;
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
      min-height: 100vh;
      padding: 20px;
    }
    .container { max-width: 1100px; margin: 0 auto; }
    h1 { font-size: 2rem; margin-bottom: 1.5rem; color: #8da2f0; }
    .status-card, .logs-container {
      background: #1a1a2e;
      border-radius: 10px;
      padding: 1.25rem;
      margin-bottom: 1.25rem;
    }
    #logs {
      max-height: 480px;
      overflow-y: auto;
      white-space: pre-wrap;
      font-family: 'SF Mono', Menlo, monospace;
      font-size: 0.8rem;
    }
    button {
      padding: 0.5rem 1rem;
      background: #4b5fc0;
      color: #fff;
      border: none;
      border-radius: 6px;
      cursor: pointer;
      margin-bottom: 0.75rem;
    }
  </style>
</head>
<body>
  <div class="container">
    <h1>StudentHub Monitor</h1>
    <div class="status-card"><div id="status">Status: checking...</div></div>
    <div class="logs-container">
      <button onclick="toggleLive()" id="toggleBtn">Pause Live Logs</button>
      <pre id="logs">Loading logs...</pre>
    </div>
  </div>
  <script>
    let liveLogs = true;
    const logsElement = document.getElementById('logs');
    const statusElement = document.getElementById('status');
    const toggleBtn = document.getElementById('toggleBtn');

    function fetchStatus() {
      fetch('/api/v1/health')
        .then(res => res.json())
        .then(data => { statusElement.textContent = 'Status: ' + (data.status === 'ok' ? 'online' : 'offline'); })
        .catch(() => { statusElement.textContent = 'Status: offline'; });
    }

    function fetchLogs() {
      if (!liveLogs) return;
      fetch('/logs?token=%s')
        .then(res => res.text())
        .then(data => {
          logsElement.textContent = data;
          logsElement.scrollTop = logsElement.scrollHeight;
        });
    }

    function toggleLive() {
      liveLogs = !liveLogs;
      toggleBtn.textContent = liveLogs ? 'Pause Live Logs' : 'Resume Live Logs';
    }

    fetchStatus();
    fetchLogs();
    setInterval(fetchStatus, 5000);
    setInterval(fetchLogs, 5000);
  </script>
</body>
</html>`, logsToken())

		c.Data(200, "text/html; charset=utf-8", []byte(page))
	})
}

// RegisterLogsRoute exposes the log file behind a query token. Without a
// configured LOGS_TOKEN the route serves nothing.
func RegisterLogsRoute(router *gin.Engine) {
	router.GET("/logs", func(c *gin.Context) {
		token := logsToken()
		if token == "" {
			c.JSON(404, gin.H{"error": "Log access is not configured"})
			return
		}
		if subtle.ConstantTimeCompare([]byte(c.Query("token")), []byte(token)) != 1 {
			c.JSON(401, gin.H{"error": "Unauthorized"})
			return
		}
		logData, err := os.ReadFile(config.LogFilePath())
		if err != nil {
			c.JSON(500, gin.H{"error": "Unable to read log"})
			return
		}
		c.Data(200, "text/plain; charset=utf-8", logData)
	})
}
