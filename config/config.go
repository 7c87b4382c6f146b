// server/config/config.go
package config

import (
	"github.com/spf13/viper"
)

// --- Các struct con, phản ánh cấu trúc của YAML ---

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

type InferenceConfig struct {
	WebhookURL     string `mapstructure:"webhookURL"`
	APIKey         string `mapstructure:"apiKey"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
}

type AllocationConfig struct {
	// FreshnessMinutes là tuổi tối đa của một bản đánh giá khẩn cấp trước
	// khi phải tính lại.
	FreshnessMinutes int `mapstructure:"freshnessMinutes"`
}

// --- Struct Config chính, bao gồm tất cả các struct con ---

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Mongo      MongoConfig      `mapstructure:"mongo"`
	Inference  InferenceConfig  `mapstructure:"inference"`
	Allocation AllocationConfig `mapstructure:"allocation"`
}

// LoadConfig đọc cấu hình từ file và ghi đè bằng các biến môi trường.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("mongo.uri", "MONGO_URI")
	viper.BindEnv("mongo.dbName", "MONGO_DBNAME")
	viper.BindEnv("inference.webhookURL", "INFERENCE_WEBHOOK_URL")
	viper.BindEnv("inference.apiKey", "INFERENCE_API_KEY")
	viper.BindEnv("inference.timeoutSeconds", "INFERENCE_TIMEOUT_SECONDS")
	viper.BindEnv("allocation.freshnessMinutes", "ALLOCATION_FRESHNESS_MINUTES")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.dbName", "hospital_ops")
	viper.SetDefault("inference.timeoutSeconds", 10)
	viper.SetDefault("allocation.freshnessMinutes", 60)

	// Đọc file config.yaml. Nếu file không tồn tại, Viper sẽ chỉ sử dụng
	// các biến môi trường và giá trị mặc định.
	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
