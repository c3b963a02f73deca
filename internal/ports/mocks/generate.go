//go:generate mockgen -source=../order_repository.go -destination=./mock_order_repository.go -package=mocks
//go:generate mockgen -source=../order_cache.go      -destination=./mock_order_cache.go      -package=mocks
//go:generate mockgen -source=../validator.go        -destination=./mock_validator.go        -package=mocks
//go:generate mockgen -source=../logger.go           -destination=./mock_logger.go           -package=mocks
//go:generate mockgen -source=../message_consumer.go -destination=./mock_message_consumer.go -package=mocks
//go:generate mockgen -source=../order_publisher.go  -destination=./mock_order_publisher.go  -package=mocks
//go:generate mockgen -source=../catalog_api.go      -destination=./mock_catalog_api.go      -package=mocks
//go:generate mockgen -source=../product_cache.go    -destination=./mock_product_cache.go    -package=mocks
//go:generate mockgen -source=../draft_store.go      -destination=./mock_draft_store.go      -package=mocks
//go:generate mockgen -source=../token_source.go     -destination=./mock_token_source.go     -package=mocks
//go:generate mockgen -source=../services.go         -destination=./mock_services.go         -package=mocks

package mocks
