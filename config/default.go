package config

// DefaultConfigYAML 嵌入的默认配置，可被外部配置文件和环境变量覆盖
var DefaultConfigYAML = []byte(`server:
  port: ":8080"
  mode: "debug"
  base_url: "http://localhost:8080"

storage:
  path: "data/fintrack.json"

email:
  enabled: false
  host: "smtp.example.com"
  port: 465
  username: ""
  password: ""
  from: "个人理财系统"

import:
  min_count: 5
  max_count: 15
  history_days: 90
`)
