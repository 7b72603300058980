package servers

//go:generate oapi-codegen --config=cfg.yaml ../../adapters/in/http/openapi.yaml
