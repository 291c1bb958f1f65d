// 运维脚本：创建账号或从 CSV 批量导入题目
//
// 用法:
//
//	go run scripts/manage.go -create-user -email a@b.com -password secret -name 张三 -role instructor
//	go run scripts/manage.go -import -questionnaire 12 -csv questions.csv
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"questionnaire_backend/internal/config"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/repository"
	"questionnaire_backend/internal/service"
	"questionnaire_backend/pkg/database"

	"gopkg.in/yaml.v3"
)

// scriptConfig 只读取脚本需要的配置段
type scriptConfig struct {
	Server struct {
		Mode string `yaml:"mode"`
	} `yaml:"server"`
	Database struct {
		Host      string `yaml:"host"`
		Port      int    `yaml:"port"`
		User      string `yaml:"user"`
		Password  string `yaml:"password"`
		DBName    string `yaml:"dbname"`
		Charset   string `yaml:"charset"`
		ParseTime bool   `yaml:"parsetime"`
	} `yaml:"database"`
}

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	createUser := flag.Bool("create-user", false, "创建账号")
	email := flag.String("email", "", "账号邮箱")
	password := flag.String("password", "", "账号密码")
	name := flag.String("name", "", "账号名称")
	role := flag.String("role", string(model.Instructor), "账号角色")
	supervisor := flag.Uint("instructor", 0, "助教所属的主讲教师ID")
	importCSV := flag.Bool("import", false, "从 CSV 导入题目")
	questionnaireID := flag.Uint("questionnaire", 0, "问卷ID")
	csvPath := flag.String("csv", "", "CSV 文件路径")
	flag.Parse()

	data, err := os.ReadFile(*configPath)
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var sc scriptConfig
	if err := yaml.Unmarshal(data, &sc); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	dbCfg := config.DatabaseConfig{
		Host:      sc.Database.Host,
		Port:      sc.Database.Port,
		User:      sc.Database.User,
		Password:  sc.Database.Password,
		DBName:    sc.Database.DBName,
		Charset:   sc.Database.Charset,
		ParseTime: sc.Database.ParseTime,
	}
	db, err := database.InitDB(&dbCfg, sc.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	switch {
	case *createUser:
		userRole := model.UserRole(*role)
		if !userRole.IsKnown() || *email == "" || *password == "" {
			log.Fatalf("参数错误: 需要 -email、-password 以及合法的 -role")
		}
		hashed, err := service.HashPassword(*password)
		if err != nil {
			log.Fatalf("密码加密失败: %v", err)
		}
		user := &model.User{
			Name:     *name,
			Email:    *email,
			Password: hashed,
			Role:     userRole,
		}
		if *supervisor != 0 {
			id := *supervisor
			user.InstructorID = &id
		}
		if err := repository.NewUserRepository(db).Create(user); err != nil {
			log.Fatalf("创建账号失败: %v", err)
		}
		log.Printf("账号已创建: id=%d email=%s role=%s", user.ID, user.Email, user.Role)

	case *importCSV:
		if *questionnaireID == 0 || *csvPath == "" {
			log.Fatalf("参数错误: 需要 -questionnaire 和 -csv")
		}
		file, err := os.Open(*csvPath)
		if err != nil {
			log.Fatalf("无法打开 CSV 文件: %v", err)
		}
		defer file.Close()

		csvService := service.NewCSVService(
			repository.NewQuestionnaireRepository(db),
			repository.NewQuestionRepository(db),
			nil,
			nil,
		)
		admin := service.ActingUser{Role: model.SuperAdmin}
		result, err := csvService.Import(context.Background(), admin, *questionnaireID, file)
		if err != nil {
			log.Fatalf("导入失败: %v", err)
		}
		log.Printf("导入完成: %d 道题目", result.Imported)

	default:
		flag.Usage()
	}
}
