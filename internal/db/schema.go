package db

// schema is the full DDL for the job board. Statements use IF NOT EXISTS so
// Migrate can run repeatedly.
const schema = `
DO $$ BEGIN
    CREATE TYPE user_role AS ENUM ('employee', 'employer');
EXCEPTION WHEN duplicate_object THEN NULL;
END $$;

DO $$ BEGIN
    CREATE TYPE application_status AS ENUM ('Applied', 'Interviewing', 'Offered', 'Rejected');
EXCEPTION WHEN duplicate_object THEN NULL;
END $$;

DO $$ BEGIN
    CREATE TYPE interview_difficulty AS ENUM ('Easy', 'Average', 'Difficult');
EXCEPTION WHEN duplicate_object THEN NULL;
END $$;

CREATE TABLE IF NOT EXISTS users (
    id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    email          TEXT NOT NULL UNIQUE,
    display_name   TEXT NOT NULL,
    photo_url      TEXT,
    role           user_role NOT NULL,
    phone          TEXT,
    portfolio_url  TEXT,
    resume_url     TEXT,
    skills         TEXT[] NOT NULL DEFAULT '{}',
    saved_jobs     UUID[] NOT NULL DEFAULT '{}',
    password_hash  TEXT NOT NULL,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS work_experiences (
    id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id     UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    title       TEXT NOT NULL,
    company     TEXT NOT NULL,
    location    TEXT NOT NULL DEFAULT '',
    start_date  TEXT NOT NULL,
    end_date    TEXT,
    description TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_work_experiences_user ON work_experiences(user_id);

CREATE TABLE IF NOT EXISTS educations (
    id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id        UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    school         TEXT NOT NULL,
    degree         TEXT NOT NULL,
    field_of_study TEXT NOT NULL,
    start_date     TEXT NOT NULL,
    end_date       TEXT NOT NULL DEFAULT '',
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_educations_user ON educations(user_id);

CREATE TABLE IF NOT EXISTS companies (
    id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name          TEXT NOT NULL,
    logo_url      TEXT NOT NULL,
    website       TEXT,
    description   TEXT,
    employee_size TEXT,
    owner_id      UUID REFERENCES users(id) ON DELETE SET NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_companies_owner ON companies(owner_id);

CREATE TABLE IF NOT EXISTS jobs (
    id                   UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    title                TEXT NOT NULL,
    company_id           UUID NOT NULL REFERENCES companies(id),
    company              TEXT NOT NULL,
    company_logo_url     TEXT NOT NULL,
    location             TEXT NOT NULL,
    salary_min           BIGINT,
    salary_max           BIGINT,
    is_salary_negotiable BOOLEAN NOT NULL DEFAULT FALSE,
    industry             TEXT NOT NULL,
    description          TEXT NOT NULL,
    work_mode            TEXT,
    employment_type      TEXT,
    position_level       TEXT,
    posted_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_jobs_company ON jobs(company_id);

CREATE TABLE IF NOT EXISTS reviews (
    id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    company_id      UUID NOT NULL REFERENCES companies(id),
    company         TEXT NOT NULL,
    author          TEXT NOT NULL,
    user_id         UUID REFERENCES users(id) ON DELETE SET NULL,
    rating          INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
    title           TEXT NOT NULL,
    pros            TEXT NOT NULL,
    cons            TEXT NOT NULL,
    culture_insight TEXT,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_reviews_company ON reviews(company_id);

CREATE TABLE IF NOT EXISTS salaries (
    id                  UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    job_title           TEXT NOT NULL,
    company_id          UUID NOT NULL REFERENCES companies(id),
    company             TEXT NOT NULL,
    location            TEXT NOT NULL,
    salary              BIGINT NOT NULL,
    years_of_experience INT NOT NULL,
    user_id             UUID REFERENCES users(id) ON DELETE SET NULL,
    submitted_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_salaries_company ON salaries(company_id);

CREATE TABLE IF NOT EXISTS interviews (
    id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    company_id  UUID NOT NULL REFERENCES companies(id),
    company     TEXT NOT NULL,
    job_title   TEXT NOT NULL,
    author      TEXT NOT NULL,
    user_id     UUID REFERENCES users(id) ON DELETE SET NULL,
    difficulty  interview_difficulty NOT NULL,
    questions   TEXT NOT NULL,
    experience  TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_interviews_company ON interviews(company_id);

CREATE TABLE IF NOT EXISTS applications (
    id                  UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    job_id              UUID NOT NULL REFERENCES jobs(id),
    company_id          UUID NOT NULL REFERENCES companies(id),
    job_title           TEXT NOT NULL,
    company             TEXT NOT NULL,
    company_logo_url    TEXT NOT NULL,
    applicant_id        UUID NOT NULL REFERENCES users(id),
    applicant_name      TEXT NOT NULL,
    applicant_email     TEXT NOT NULL,
    applicant_phone     TEXT,
    applicant_portfolio TEXT,
    cover_letter        TEXT,
    resume_url          TEXT,
    status              application_status NOT NULL DEFAULT 'Applied',
    submitted_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_applications_job ON applications(job_id);
CREATE INDEX IF NOT EXISTS idx_applications_applicant ON applications(applicant_id);
`
