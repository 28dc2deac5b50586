package websocket

// OutgoingMessage 服务端 -> 客户端
type OutgoingMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// IncomingMessage 客户端 -> 服务端，From 由连接身份填充，不信任客户端
type IncomingMessage struct {
	From  string `json:"from"`
	Event string `json:"event"`
	Data  any    `json:"data"`
}
