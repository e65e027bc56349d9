package http

import (
	"net"
	"net/http"
	"time"
)

// ephemerisConns は1チャート分の天体位置を並行取得できる接続数です。
const ephemerisConns = 16

// NewEphemerisClient はリモート天体暦サービス呼び出し用のHTTPクライアントを作成します。
//
// リモート天体暦は単一ホストに対して1チャートあたり十数回の位置計算を並行して行うため、
// ホスト単位のアイドル接続数をその並行度に合わせています。
//
// 設定:
//   - Proxy: 環境変数（HTTP_PROXYなど）を尊重
//   - MaxIdleConnsPerHost / MaxConnsPerHost: 天体暦ホストへの接続を ephemerisConns に制限
//   - Client.Timeout: 1回の位置・ハウス計算リクエスト全体のタイムアウト
//
// 注意:
//   - http.DefaultClientにはタイムアウトがないため使用しないこと
func NewEphemerisClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        ephemerisConns,
		MaxIdleConnsPerHost: ephemerisConns,
		MaxConnsPerHost:     ephemerisConns,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
		ForceAttemptHTTP2:   true,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
